package domain

import "fmt"

// ValidationError reports a malformed report: ragged preview rows,
// column-set disagreement, or a missing required field. It is surfaced
// to the caller as-is and never recovered from.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid report: %s", e.Reason)
}
