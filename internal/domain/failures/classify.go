package failures

import (
	"errors"

	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
)

// Classify maps an analyzer failure onto its audit cause. Unknown errors
// count as the backend being unreachable, the broadest class.
func Classify(err error) Cause {
	switch {
	case errors.Is(err, ai.ErrMissingField):
		return CauseMissingField
	case errors.Is(err, ai.ErrMalformedPayload):
		return CauseMalformedPayload
	default:
		return CauseBackendUnreachable
	}
}
