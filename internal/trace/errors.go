package trace

import (
	"errors"
	"fmt"
)

// Domain errors for trace generation.
var (
	// ErrInvalidAlgorithm indicates an algorithm name outside the supported set.
	ErrInvalidAlgorithm = errors.New("sortviz: invalid algorithm")

	// ErrInvalidTrace indicates a trace that breaks one of its invariants.
	ErrInvalidTrace = errors.New("sortviz: invalid trace")
)

// ValidationError reports the first step at which a trace breaks an invariant.
type ValidationError struct {
	Step   int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTrace
}
