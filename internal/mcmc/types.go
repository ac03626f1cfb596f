package mcmc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is a position in the sampled space.
type State []float64

// Zero returns the origin of an n-dimensional space.
func Zero(n int) State {
	return make(State, n)
}

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every coordinate is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return floats.Norm(s, 2)
}

func (s State) Dot(other State) float64 {
	return floats.Dot(s, other)
}

func (s State) Add(other State) State {
	result := s.Clone()
	floats.Add(result, other)
	return result
}

func (s State) Sub(other State) State {
	result := s.Clone()
	floats.Sub(result, other)
	return result
}

func (s State) Scale(factor float64) State {
	result := s.Clone()
	floats.Scale(factor, result)
	return result
}

// Equal reports bitwise equality, so two NaN coordinates compare equal.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if math.Float64bits(s[i]) != math.Float64bits(other[i]) {
			return false
		}
	}
	return true
}

// EnergyFunc returns the negative log unnormalized density at x.
type EnergyFunc func(x State) float64

// GradientFunc returns the gradient of an EnergyFunc at x.
type GradientFunc func(x State) State

// Target is a distribution expressed as an energy. Energy must be pure and
// deterministic; +Inf marks points outside the support.
type Target interface {
	Energy(x State) float64
	Dim() int
}

// DifferentiableTarget additionally exposes the energy gradient. Keeping
// Gradient consistent with Energy is the caller's obligation.
type DifferentiableTarget interface {
	Target
	Gradient(x State) State
}

// Source is the injected randomness of a single chain. *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
	NormFloat64() float64
}

// Outcome describes what a single transition did.
type Outcome struct {
	Accepted  bool
	Divergent bool
}

// Transition advances a chain by one step. On rejection it returns current
// itself, not a copy.
type Transition interface {
	Step(current State, rng Source) (State, Outcome, error)
}

// TransitionFunc adapts a plain function to Transition.
type TransitionFunc func(current State, rng Source) (State, Outcome, error)

func (f TransitionFunc) Step(current State, rng Source) (State, Outcome, error) {
	return f(current, rng)
}

// Integrator evolves a (position, velocity) pair under the force -grad.
// Implementations must be volume preserving and reversible under velocity
// negation, and must not mutate their inputs.
type Integrator interface {
	Integrate(x0, v0 State, grad GradientFunc, dt float64, nSteps int) (State, State)
}
