package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
	"github.com/belalnote2/InsightAssistant/internal/domain/analysis"
)

// generateResponse is the Ollama generate API reply envelope. Response is
// a pointer so an absent field stays distinguishable from an empty one.
type generateResponse struct {
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

// decodeEnvelope decodes the raw reply body. A body that is not JSON at
// all counts as the call itself failing, not as a payload problem.
func decodeEnvelope(raw []byte) (generateResponse, error) {
	var env generateResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return generateResponse{}, fmt.Errorf("%w: decoding reply: %v", ai.ErrBackendUnreachable, err)
	}
	return env, nil
}

// parseEnvelope extracts and validates the JSON answer embedded in the
// envelope's response field. Missing fields inside a well-formed answer
// resolve to defaults, never to an error.
func parseEnvelope(env generateResponse) (analysis.Result, error) {
	if env.Response == nil {
		return analysis.Result{}, ai.ErrMissingField
	}
	res, err := analysis.DecodeResult([]byte(*env.Response))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: %v", ai.ErrMalformedPayload, err)
	}
	return res, nil
}
