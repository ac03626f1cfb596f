package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from MCSIM_* environment variables. Unset
// pointer fields leave the file or preset value alone.
type Env struct {
	Seed     *int64   `env:"MCSIM_SEED"`
	Samples  *int     `env:"MCSIM_SAMPLES"`
	StepSize *float64 `env:"MCSIM_STEP_SIZE"`
	DataDir  string   `env:"MCSIM_DATA_DIR" envDefault:".mcsim"`
	Store    string   `env:"MCSIM_STORE" envDefault:"file"`
	LogLevel string   `env:"MCSIM_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Apply overrides the run fields that are set in the environment.
func (e Env) Apply(cfg *Config) {
	if e.Seed != nil {
		cfg.Seed = *e.Seed
	}
	if e.Samples != nil {
		cfg.Samples = *e.Samples
	}
	if e.StepSize != nil {
		cfg.StepSize = *e.StepSize
	}
}
