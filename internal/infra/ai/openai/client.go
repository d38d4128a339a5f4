package openai

import (
	"context"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"

	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
	"github.com/belalnote2/InsightAssistant/internal/domain/analysis"
	"github.com/belalnote2/InsightAssistant/internal/infra/ai/prompt"
)

const maxTokens = 1024

// Client is the alternative Analyzer for OpenAI-compatible endpoints
// (including Ollama's /v1 shim). Same contract as the Ollama client:
// one call, no retries, fallback on every failure.
type Client struct {
	*openai.Client
	Model string

	Report func(err error)
}

func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		Client: openai.NewClientWithConfig(cfg),
		Model:  model,
		Report: func(err error) {
			log.Printf("openai: falling back: %v", err)
		},
	}
}

func (c *Client) Analyze(ctx context.Context, text string) analysis.Result {
	res, err := c.analyze(ctx, text)
	if err != nil {
		if c.Report != nil {
			c.Report(err)
		}
		return ai.Fallback()
	}
	return res
}

func (c *Client) analyze(ctx context.Context, text string) (analysis.Result, error) {
	resp, err := c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt.Analysis(text)},
		},
	})
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: %v", ai.ErrBackendUnreachable, err)
	}
	if len(resp.Choices) == 0 {
		return analysis.Result{}, ai.ErrMissingField
	}
	res, err := analysis.DecodeResult([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: %v", ai.ErrMalformedPayload, err)
	}
	return res, nil
}
