package mcmc

import (
	"errors"
	"fmt"
)

// Domain errors for sampling operations.
var (
	// ErrInvalidConfig indicates a configuration rejected before sampling began.
	ErrInvalidConfig = errors.New("mcmc: invalid configuration")

	// ErrNaNEnergy indicates the target returned NaN. Unlike +Inf this is
	// never folded into a rejection.
	ErrNaNEnergy = errors.New("mcmc: energy evaluated to NaN")

	// ErrDimensionMismatch indicates a state whose length differs from the target.
	ErrDimensionMismatch = errors.New("mcmc: dimension mismatch between state and target")
)

// StepError wraps an error with the iteration and state at which it occurred.
type StepError struct {
	Iteration int
	State     State
	Wrapped   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("iteration %d: %v", e.Iteration, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
