package engine

import (
	"errors"
	"fmt"
)

// Phase names a step of an apply.
type Phase string

const (
	PhasePreserve Phase = "preserve"
	PhaseReset    Phase = "reset"
	PhaseResolve  Phase = "resolve"
	PhaseCommit   Phase = "commit"
	PhaseShadows  Phase = "shadows"
	PhaseFallback Phase = "fallback"
)

var (
	// ErrInvalidRequest is returned for requests missing their payload.
	ErrInvalidRequest = errors.New("invalid theme request")

	// ErrPanic wraps a recovered panic.
	ErrPanic = errors.New("panic during apply")
)

// ApplyError reports a failed apply and the phase it failed in.
type ApplyError struct {
	ApplyID string
	Request string
	Phase   Phase
	Err     error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply %s failed during %s: %v", e.Request, e.Phase, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}
