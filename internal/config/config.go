package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mcsim/internal/mcmc"
)

const (
	DefaultSamples       = 10000
	DefaultStepSize      = 0.5
	DefaultMass          = 1.0
	DefaultLeapfrogSteps = 10
	DefaultChains        = 1
	DefaultThin          = 1
)

const (
	SamplerMetropolis  = "metropolis"
	SamplerHamiltonian = "hamiltonian"
)

// Config is one sampling run as stored in YAML files and presets.
type Config struct {
	Sampler              string             `yaml:"sampler"`
	Target               string             `yaml:"target"`
	TargetParams         map[string]float64 `yaml:"target_params,omitempty"`
	Proposal             string             `yaml:"proposal"`
	Samples              int                `yaml:"samples"`
	StepSize             float64            `yaml:"step_size"`
	Mass                 float64            `yaml:"mass"`
	LeapfrogSteps        int                `yaml:"leapfrog_steps"`
	SkipVelocityNegation bool               `yaml:"skip_velocity_negation,omitempty"`
	InitialState         []float64          `yaml:"initial_state,omitempty"`
	Seed                 int64              `yaml:"seed"`
	Chains               int                `yaml:"chains"`
	BurnIn               int                `yaml:"burn_in"`
	Thin                 int                `yaml:"thin"`
}

func DefaultConfig() *Config {
	return &Config{
		Sampler:       SamplerMetropolis,
		Target:        "gaussian",
		Proposal:      "gaussian",
		Samples:       DefaultSamples,
		StepSize:      DefaultStepSize,
		Mass:          DefaultMass,
		LeapfrogSteps: DefaultLeapfrogSteps,
		Chains:        DefaultChains,
		Thin:          DefaultThin,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets are never modified through the
// returned value.
func (c *Config) Clone() *Config {
	out := *c
	if c.TargetParams != nil {
		out.TargetParams = make(map[string]float64, len(c.TargetParams))
		for k, v := range c.TargetParams {
			out.TargetParams[k] = v
		}
	}
	if c.InitialState != nil {
		out.InitialState = append([]float64(nil), c.InitialState...)
	}
	return &out
}

// MCMC converts the run configuration to the engine configuration. Unset
// mass and leapfrog steps become 1.
func (c *Config) MCMC() mcmc.Config {
	var initial mcmc.State
	if c.InitialState != nil {
		initial = mcmc.State(c.InitialState).Clone()
	}
	return mcmc.Config{
		NumSamples:           c.Samples,
		InitialState:         initial,
		StepSize:             c.StepSize,
		Mass:                 c.Mass,
		LeapfrogSteps:        c.LeapfrogSteps,
		SkipVelocityNegation: c.SkipVelocityNegation,
	}.WithDefaults()
}

// Validate checks the fields the engine does not know about and then the
// engine configuration itself.
func (c *Config) Validate() error {
	switch c.Sampler {
	case SamplerMetropolis, SamplerHamiltonian:
	default:
		return fmt.Errorf("%w: unknown sampler %q", mcmc.ErrInvalidConfig, c.Sampler)
	}
	switch c.Proposal {
	case "", "gaussian", "uniform":
	default:
		return fmt.Errorf("%w: unknown proposal %q", mcmc.ErrInvalidConfig, c.Proposal)
	}
	if c.Target == "" {
		return fmt.Errorf("%w: target is empty", mcmc.ErrInvalidConfig)
	}
	if c.Chains < 1 {
		return fmt.Errorf("%w: chains must be positive, got %d", mcmc.ErrInvalidConfig, c.Chains)
	}
	if c.BurnIn < 0 || (c.Samples > 0 && c.BurnIn >= c.Samples) {
		return fmt.Errorf("%w: burn_in must lie in [0, samples), got %d", mcmc.ErrInvalidConfig, c.BurnIn)
	}
	if c.Thin < 1 {
		return fmt.Errorf("%w: thin must be positive, got %d", mcmc.ErrInvalidConfig, c.Thin)
	}
	return c.MCMC().Validate()
}
