package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("campaign not found")
	ErrInvalidStage    = errors.New("operation not allowed in current stage")
	ErrVersionConflict = errors.New("campaign was modified concurrently")

	// ErrDispatchInProgress is returned when a variant was claimed for
	// sending but its result was never stored. Some recipients may already
	// have been mailed, so the variant is not sent again automatically.
	ErrDispatchInProgress = errors.New("variant dispatch in progress or interrupted")
)

// ValidationError reports a precondition failure detected before any side
// effect took place.
type ValidationError struct {
	Label  Label
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Label == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: variant %s: %s", e.Label, e.Reason)
}

// StageError wraps the failure of one automatic pipeline step.
type StageError struct {
	Step Step
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// DispatchUnavailableError is returned when the send capability is
// categorically unavailable for a whole variant. The variant stays unsent.
type DispatchUnavailableError struct {
	Label Label
	Err   error
}

func (e *DispatchUnavailableError) Error() string {
	return fmt.Sprintf("dispatch of variant %s unavailable: %v", e.Label, e.Err)
}

func (e *DispatchUnavailableError) Unwrap() error { return e.Err }
