package targets

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/mcsim/internal/mcmc"
)

var (
	ErrUnknownTarget = errors.New("targets: unknown target")
	ErrUnknownParam  = errors.New("targets: unknown parameter")
	ErrInvalidParam  = errors.New("targets: invalid parameter value")
)

// Target is a differentiable energy with named, adjustable parameters.
type Target interface {
	mcmc.DifferentiableTarget
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Moments is implemented by targets with closed-form per-coordinate mean
// and variance. Infinite variance is reported as +Inf.
type Moments interface {
	Mean() mcmc.State
	Variance() mcmc.State
}

func unknownParam(target, name string) error {
	return fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParam, target, name)
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidParam, name, v)
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParam, name, v)
	}
	return nil
}

func dimension(v float64) (int, error) {
	if v < 1 || v != math.Trunc(v) || v > 1<<20 {
		return 0, fmt.Errorf("%w: dim must be a positive integer, got %g", ErrInvalidParam, v)
	}
	return int(v), nil
}

func fill(n int, v float64) mcmc.State {
	s := make(mcmc.State, n)
	for i := range s {
		s[i] = v
	}
	return s
}
