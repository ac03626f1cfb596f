package mcmc

import (
	"fmt"
	"math"
)

// Func is a Target assembled from plain functions.
type Func struct {
	N    int
	E    EnergyFunc
	Grad GradientFunc
}

func (f *Func) Energy(x State) float64 { return f.E(x) }
func (f *Func) Dim() int               { return f.N }

// Gradient panics when the Func was built without one; constructors that
// need gradients check HasGradient first.
func (f *Func) Gradient(x State) State { return f.Grad(x) }

func (f *Func) HasGradient() bool { return f.Grad != nil }

// FromEnergy wraps an energy function.
func FromEnergy(dim int, energy EnergyFunc) *Func {
	return &Func{N: dim, E: energy}
}

// FromEnergyGradient wraps an energy function and its gradient.
func FromEnergyGradient(dim int, energy EnergyFunc, grad GradientFunc) *Func {
	return &Func{N: dim, E: energy, Grad: grad}
}

// FromDensity adapts an unnormalized density p to the energy -log p, so both
// framings share one acceptance rule. p == 0 maps to +Inf; a negative or NaN
// density maps to NaN.
func FromDensity(dim int, density func(x State) float64) *Func {
	return FromEnergy(dim, func(x State) float64 {
		p := density(x)
		switch {
		case math.IsNaN(p) || p < 0:
			return math.NaN()
		case p == 0:
			return math.Inf(1)
		}
		return -math.Log(p)
	})
}

// AcceptProbability returns min(1, exp(current - candidate)) for two
// energies. A +Inf candidate is never accepted; NaN on either side is
// ErrNaNEnergy.
func AcceptProbability(current, candidate float64) (float64, error) {
	if math.IsNaN(current) || math.IsNaN(candidate) {
		return 0, ErrNaNEnergy
	}
	if math.IsInf(candidate, 1) {
		return 0, nil
	}
	delta := current - candidate
	switch {
	case math.IsNaN(delta):
		// both -Inf
		return 0, nil
	case delta >= 0:
		return 1, nil
	}
	return math.Exp(delta), nil
}

// DensityRatioAcceptance is the density framing of AcceptProbability:
// min(1, p(candidate)/p(current)).
func DensityRatioAcceptance(current, candidate float64) (float64, error) {
	if math.IsNaN(current) || math.IsNaN(candidate) || current < 0 || candidate < 0 {
		return 0, ErrNaNEnergy
	}
	if candidate == 0 {
		return 0, nil
	}
	if current == 0 {
		return 1, nil
	}
	return math.Min(1, candidate/current), nil
}

func checkDim(t Target, x State) error {
	if len(x) != t.Dim() {
		return fmt.Errorf("%w: %w: state has %d coordinates, target has %d", ErrInvalidConfig, ErrDimensionMismatch, len(x), t.Dim())
	}
	return nil
}
