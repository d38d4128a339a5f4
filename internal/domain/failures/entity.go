package failures

import "time"

// Cause of a degraded analysis call
type Cause string

const (
	CauseBackendUnreachable Cause = "backend_unreachable"
	CauseMissingField       Cause = "missing_field"
	CauseMalformedPayload   Cause = "malformed_payload"
)

// Failure records one analysis call that fell back to the degraded
// result, for auditing. Recording never influences the returned result.
type Failure struct {
	ID         int64     `json:"id"`
	Cause      Cause     `json:"cause"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
}
