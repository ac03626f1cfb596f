package mcmc

import "math"

// Config holds the immutable per-run parameters.
type Config struct {
	NumSamples   int
	InitialState State // nil selects the zero vector

	// StepSize is the proposal standard deviation for Metropolis and the
	// integrator time step for Hamiltonian transitions.
	StepSize float64

	// Hamiltonian only. Zero means unset and defaults to 1.
	Mass          float64
	LeapfrogSteps int

	// SkipVelocityNegation drops the final velocity flip of a Hamiltonian
	// proposal. The kinetic energy is even in the velocity and the velocity
	// is discarded after every step, so chains are identical either way.
	SkipVelocityNegation bool
}

func DefaultConfig() Config {
	return Config{
		NumSamples:    1000,
		StepSize:      0.5,
		Mass:          1.0,
		LeapfrogSteps: 1,
	}
}

// WithDefaults returns c with unset Hamiltonian fields set to 1.
func (c Config) WithDefaults() Config {
	if c.Mass == 0 {
		c.Mass = 1
	}
	if c.LeapfrogSteps == 0 {
		c.LeapfrogSteps = 1
	}
	return c
}

// Validate rejects malformed configurations before any sampling begins.
// Zero Hamiltonian fields are unset, not malformed.
func (c Config) Validate() error {
	if c.NumSamples < 1 {
		return invalidConfig("num_samples must be positive, got %d", c.NumSamples)
	}
	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 0) {
		return invalidConfig("step_size must be positive and finite, got %g", c.StepSize)
	}
	if c.Mass < 0 || math.IsNaN(c.Mass) || math.IsInf(c.Mass, 0) {
		return invalidConfig("mass must be positive and finite, got %g", c.Mass)
	}
	if c.LeapfrogSteps < 0 {
		return invalidConfig("leapfrog_steps must be at least 1, got %d", c.LeapfrogSteps)
	}
	if c.InitialState != nil && !c.InitialState.IsValid() {
		return invalidConfig("initial_state must be finite, got %v", c.InitialState)
	}
	return nil
}

func (c Config) validateHamiltonian() error {
	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 0) {
		return invalidConfig("step_size must be positive and finite, got %g", c.StepSize)
	}
	if !(c.Mass > 0) || math.IsInf(c.Mass, 0) {
		return invalidConfig("mass must be positive and finite, got %g", c.Mass)
	}
	if c.LeapfrogSteps < 1 {
		return invalidConfig("leapfrog_steps must be at least 1, got %d", c.LeapfrogSteps)
	}
	return nil
}

// Initial returns a copy of the configured initial state, or the zero
// vector when none is set.
func (c Config) Initial(dim int) (State, error) {
	if c.InitialState == nil {
		return Zero(dim), nil
	}
	if len(c.InitialState) != dim {
		return nil, invalidConfig("initial_state has %d coordinates, target has %d", len(c.InitialState), dim)
	}
	return c.InitialState.Clone(), nil
}
