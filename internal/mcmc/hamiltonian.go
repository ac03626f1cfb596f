package mcmc

import (
	"fmt"
	"math"
)

// Hamiltonian is the Hamiltonian Monte Carlo transition. Velocities are
// drawn from N(0, 1/mass) every step and never leave Step.
type Hamiltonian struct {
	target        DifferentiableTarget
	integrator    Integrator
	mass          float64
	stepSize      float64
	leapfrogSteps int
	skipNegation  bool
}

type gradientReporter interface {
	HasGradient() bool
}

// NewHamiltonian validates cfg and returns the transition. Only StepSize,
// Mass, LeapfrogSteps and SkipVelocityNegation are read; a zero Mass or
// LeapfrogSteps means 1.
func NewHamiltonian(target DifferentiableTarget, integrator Integrator, cfg Config) (*Hamiltonian, error) {
	if target == nil {
		return nil, invalidConfig("target is nil")
	}
	if g, ok := target.(gradientReporter); ok && !g.HasGradient() {
		return nil, invalidConfig("hamiltonian transition requires a gradient")
	}
	if integrator == nil {
		return nil, invalidConfig("integrator is nil")
	}
	if target.Dim() < 1 {
		return nil, invalidConfig("target dimension must be at least 1, got %d", target.Dim())
	}
	cfg = cfg.WithDefaults()
	if err := cfg.validateHamiltonian(); err != nil {
		return nil, err
	}
	return &Hamiltonian{
		target:        target,
		integrator:    integrator,
		mass:          cfg.Mass,
		stepSize:      cfg.StepSize,
		leapfrogSteps: cfg.LeapfrogSteps,
		skipNegation:  cfg.SkipVelocityNegation,
	}, nil
}

func (h *Hamiltonian) Target() Target { return h.target }

func (h *Hamiltonian) kinetic(v State) float64 {
	return 0.5 * h.mass * v.Dot(v)
}

// Step resamples the velocity, integrates the trajectory and accepts the
// end point with probability min(1, exp(H(current) - H(candidate))).
// Trajectories that leave the finite reals are rejected as divergent.
func (h *Hamiltonian) Step(current State, rng Source) (State, Outcome, error) {
	v0 := normalVector(rng, len(current), 1/math.Sqrt(h.mass))

	u0 := h.target.Energy(current)
	if math.IsNaN(u0) {
		return current, Outcome{}, fmt.Errorf("hamiltonian: potential at current state: %w", ErrNaNEnergy)
	}
	h0 := u0 + h.kinetic(v0)

	candidate, v1 := h.integrator.Integrate(current, v0, h.target.Gradient, h.stepSize, h.leapfrogSteps)
	if !h.skipNegation {
		for i := range v1 {
			v1[i] = -v1[i]
		}
	}

	u := rng.Float64()
	if !candidate.IsValid() || !v1.IsValid() {
		return current, Outcome{Divergent: true}, nil
	}

	u1 := h.target.Energy(candidate)
	h1 := u1 + h.kinetic(v1)
	alpha, err := AcceptProbability(h0, h1)
	if err != nil {
		return current, Outcome{}, fmt.Errorf("hamiltonian: H(current)=%g H(candidate)=%g: %w", h0, h1, err)
	}

	if u < alpha {
		return candidate, Outcome{Accepted: true}, nil
	}
	return current, Outcome{}, nil
}
