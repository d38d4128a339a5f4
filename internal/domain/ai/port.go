package ai

import (
	"context"

	"github.com/belalnote2/InsightAssistant/internal/domain/analysis"
)

// Analyzer port. Analyze never fails outward: every backend failure is
// absorbed into the fallback result, so there is no error return.
type Analyzer interface {
	Analyze(ctx context.Context, text string) analysis.Result
}
