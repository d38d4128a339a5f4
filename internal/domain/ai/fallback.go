package ai

import "github.com/belalnote2/InsightAssistant/internal/domain/analysis"

// Sentinel field values for the degraded result. Persons is a literal
// string on purpose: "backend never answered" must stay distinguishable
// from "backend answered with an empty person list".
const (
	FallbackSummary = "No summary, error"
	FallbackPersons = "No people, error"
)

// Fallback returns the fixed degraded result used whenever a valid
// backend answer cannot be obtained. It does not depend on the failure
// cause; the cause is reported separately for diagnostics only.
func Fallback() analysis.Result {
	return analysis.Result{
		Summary:  FallbackSummary,
		Persons:  analysis.PersonList{FallbackPersons},
		Category: analysis.CategoryOther,
	}
}
