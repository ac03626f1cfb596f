package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/diagnostics"
	"github.com/san-kum/mcsim/internal/integrators"
	"github.com/san-kum/mcsim/internal/mcmc"
	"github.com/san-kum/mcsim/internal/targets"
)

// SamplerFunc builds a transition for a target from a run configuration.
type SamplerFunc func(r *Registry, t targets.Target, cfg *config.Config) (mcmc.Transition, error)

type Registry struct {
	samplers    map[string]SamplerFunc
	proposals   map[string]func() mcmc.Proposal
	integrators map[string]func() mcmc.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		samplers:    make(map[string]SamplerFunc),
		proposals:   make(map[string]func() mcmc.Proposal),
		integrators: make(map[string]func() mcmc.Integrator),
	}

	r.proposals["gaussian"] = func() mcmc.Proposal { return mcmc.GaussianProposal{} }
	r.proposals["uniform"] = func() mcmc.Proposal { return mcmc.UniformProposal{} }

	r.integrators["leapfrog"] = func() mcmc.Integrator { return integrators.NewLeapfrog() }

	r.samplers[config.SamplerMetropolis] = func(r *Registry, t targets.Target, cfg *config.Config) (mcmc.Transition, error) {
		name := cfg.Proposal
		if name == "" {
			name = "gaussian"
		}
		proposal, err := r.GetProposal(name)
		if err != nil {
			return nil, err
		}
		return mcmc.NewMetropolis(t, proposal, cfg.StepSize)
	}
	r.samplers[config.SamplerHamiltonian] = func(r *Registry, t targets.Target, cfg *config.Config) (mcmc.Transition, error) {
		integrator, err := r.GetIntegrator("leapfrog")
		if err != nil {
			return nil, err
		}
		return mcmc.NewHamiltonian(t, integrator, cfg.MCMC())
	}

	return r
}

func (r *Registry) GetTarget(name string, params map[string]float64) (targets.Target, error) {
	return targets.New(name, params)
}

func (r *Registry) GetProposal(name string) (mcmc.Proposal, error) {
	fn, ok := r.proposals[name]
	if !ok {
		return nil, fmt.Errorf("unknown proposal: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (mcmc.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// BuildTransition returns the configured sampler bound to t.
func (r *Registry) BuildTransition(t targets.Target, cfg *config.Config) (mcmc.Transition, error) {
	fn, ok := r.samplers[cfg.Sampler]
	if !ok {
		return nil, fmt.Errorf("unknown sampler: %s", cfg.Sampler)
	}
	return fn(r, t, cfg)
}

func (r *Registry) ListTargets() []string {
	return targets.Names()
}

func (r *Registry) ListSamplers() []string {
	names := make([]string, 0, len(r.samplers))
	for name := range r.samplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the per-chain observers reported for every run.
func (r *Registry) DefaultMetrics(dim int) []diagnostics.Metric {
	metrics := []diagnostics.Metric{
		diagnostics.NewJumps(),
		diagnostics.NewInBounds(10.0),
	}
	for d := 0; d < dim; d++ {
		metrics = append(metrics, diagnostics.NewRunningMean(d))
	}
	return metrics
}
