package mcmc

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if a.Dot(b) != 32 {
		t.Errorf("Dot failed: got %v", a.Dot(b))
	}

	if a[0] != 1 || b[0] != 4 {
		t.Errorf("arithmetic mutated operands: %v %v", a, b)
	}
}

func TestState_Equal(t *testing.T) {
	nan := math.NaN()
	if !(State{1, nan}).Equal(State{1, nan}) {
		t.Error("bitwise-identical NaN states should be equal")
	}
	if (State{1, 2}).Equal(State{1, 2, 3}) {
		t.Error("states of different length should differ")
	}
	if (State{0}).Equal(State{math.Copysign(0, -1)}) {
		t.Error("+0 and -0 differ bitwise")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Mass != 1 || cfg.LeapfrogSteps != 1 {
		t.Errorf("unexpected hamiltonian defaults: mass=%g steps=%d", cfg.Mass, cfg.LeapfrogSteps)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero samples", func(c *Config) { c.NumSamples = 0 }},
		{"negative samples", func(c *Config) { c.NumSamples = -5 }},
		{"zero step", func(c *Config) { c.StepSize = 0 }},
		{"negative step", func(c *Config) { c.StepSize = -0.1 }},
		{"NaN step", func(c *Config) { c.StepSize = math.NaN() }},
		{"negative mass", func(c *Config) { c.Mass = -1 }},
		{"NaN mass", func(c *Config) { c.Mass = math.NaN() }},
		{"infinite mass", func(c *Config) { c.Mass = math.Inf(1) }},
		{"negative leapfrog steps", func(c *Config) { c.LeapfrogSteps = -1 }},
		{"non-finite initial", func(c *Config) { c.InitialState = State{math.Inf(1)} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{NumSamples: 10, StepSize: 0.5}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unset hamiltonian fields rejected: %v", err)
	}

	d := cfg.WithDefaults()
	if d.Mass != 1 || d.LeapfrogSteps != 1 {
		t.Errorf("WithDefaults() = mass %g, leapfrog steps %d; want 1, 1", d.Mass, d.LeapfrogSteps)
	}

	set := Config{NumSamples: 10, StepSize: 0.5, Mass: 0.25, LeapfrogSteps: 8}.WithDefaults()
	if set.Mass != 0.25 || set.LeapfrogSteps != 8 {
		t.Errorf("WithDefaults() overwrote explicit values: %+v", set)
	}
}

func TestConfigInitial(t *testing.T) {
	cfg := DefaultConfig()
	x, err := cfg.Initial(3)
	if err != nil || !x.Equal(State{0, 0, 0}) {
		t.Errorf("Initial(3) = %v, %v; want zero vector", x, err)
	}

	cfg.InitialState = State{1, 2}
	x, err = cfg.Initial(2)
	if err != nil || !x.Equal(State{1, 2}) {
		t.Errorf("Initial(2) = %v, %v", x, err)
	}
	x[0] = 99
	if cfg.InitialState[0] != 1 {
		t.Error("Initial must return a copy")
	}

	if _, err := cfg.Initial(3); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("dimension mismatch: got %v", err)
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Iteration: 12, State: State{1}, Wrapped: ErrNaNEnergy}
	if err.Error() != "iteration 12: mcmc: energy evaluated to NaN" {
		t.Errorf("StepError.Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNaNEnergy) {
		t.Error("StepError should unwrap to ErrNaNEnergy")
	}
}
