package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
	"github.com/belalnote2/InsightAssistant/internal/domain/analysis"
	"github.com/belalnote2/InsightAssistant/internal/infra/ai/prompt"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "mistral"
	defaultTimeout = 120 * time.Second
)

// Client calls the Ollama generate API and implements ai.Analyzer.
// One request per Analyze call, no retries: any failure degrades to the
// fixed fallback result instead of propagating.
type Client struct {
	baseURL string
	model   string
	client  *http.Client

	// Report receives the classified cause before each fallback. It must
	// not affect the returned value; main composes logging, counters and
	// the failure audit here. Defaults to log.Printf.
	Report func(err error)
}

func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		Report: func(err error) {
			log.Printf("ollama: falling back: %v", err)
		},
	}
}

// generateRequest is the Ollama generate API request body.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format"`
	Stream bool   `json:"stream"`
}

// Analyze sends the article to Ollama and returns a fully populated
// result. The answer is either the backend's validated output or the
// fallback; callers never see an error.
func (c *Client) Analyze(ctx context.Context, text string) analysis.Result {
	res, err := c.generate(ctx, text)
	if err != nil {
		if c.Report != nil {
			c.Report(err)
		}
		return ai.Fallback()
	}
	return res
}

func (c *Client) generate(ctx context.Context, text string) (analysis.Result, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt.Analysis(text),
		Format: "json",
		Stream: false,
	})
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: marshaling request: %v", ai.ErrBackendUnreachable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: creating request: %v", ai.ErrBackendUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: %v", ai.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return analysis.Result{}, fmt.Errorf("%w: status %d", ai.ErrBackendUnreachable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: reading reply: %v", ai.ErrBackendUnreachable, err)
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return analysis.Result{}, err
	}
	return parseEnvelope(env)
}
