package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/diagnostics"
	"github.com/san-kum/mcsim/internal/mcmc"
	"github.com/san-kum/mcsim/internal/storage"
	"github.com/san-kum/mcsim/internal/targets"
)

// Result is the outcome of one experiment. Chains hold every sample; the
// summaries and metrics are computed after burn-in and thinning.
type Result struct {
	Chains    []*mcmc.Chain
	Kept      [][]mcmc.State
	Summaries []diagnostics.Summary
	RHat      []float64
	Metrics   map[string]float64
	Stats     mcmc.Stats
	Elapsed   time.Duration
}

type Experiment struct {
	cfg        *config.Config
	log        zerolog.Logger
	target     targets.Target
	transition mcmc.Transition
	metrics    []diagnostics.Metric
}

func New(cfg *config.Config, log zerolog.Logger) *Experiment {
	return &Experiment{cfg: cfg, log: log}
}

// Setup validates the configuration and builds the target and transition.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	target, err := reg.GetTarget(e.cfg.Target, e.cfg.TargetParams)
	if err != nil {
		return err
	}
	if _, err := e.cfg.MCMC().Initial(target.Dim()); err != nil {
		return err
	}

	transition, err := reg.BuildTransition(target, e.cfg)
	if err != nil {
		return err
	}

	e.target = target
	e.transition = transition
	e.metrics = reg.DefaultMetrics(target.Dim())
	return nil
}

func (e *Experiment) Target() targets.Target { return e.target }

func (e *Experiment) Config() *config.Config { return e.cfg }

// Run samples cfg.Chains chains. A single chain uses cfg.Seed; an ensemble
// seeds chain i with cfg.Seed+i.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.transition == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	mcfg := e.cfg.MCMC()
	initial, err := mcfg.Initial(e.target.Dim())
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("target", e.cfg.Target).
		Str("sampler", e.cfg.Sampler).
		Int("dim", e.target.Dim()).
		Int("samples", e.cfg.Samples).
		Int("chains", e.cfg.Chains).
		Int64("seed", e.cfg.Seed).
		Float64("step_size", e.cfg.StepSize).
		Msg("sampling started")

	start := time.Now()
	var chains []*mcmc.Chain
	if e.cfg.Chains == 1 {
		chain, err := mcmc.Sample(ctx, e.transition, e.target, mcfg, mcmc.NewSource(e.cfg.Seed))
		if err != nil {
			e.logFailure(err)
			return nil, err
		}
		chains = []*mcmc.Chain{chain}
	} else {
		chains, err = mcmc.NewEnsemble(e.transition, e.cfg.Chains, e.cfg.Seed).Run(ctx, initial, e.cfg.Samples)
		if err != nil {
			e.logFailure(err)
			return nil, err
		}
	}

	res := e.summarize(chains)
	res.Elapsed = time.Since(start)

	ev := e.log.Info().
		Dur("elapsed", res.Elapsed).
		Float64("acceptance_rate", res.Stats.AcceptanceRate())
	if res.Stats.Divergent > 0 {
		ev = ev.Int("divergent", res.Stats.Divergent)
	}
	ev.Msg("sampling finished")

	for d, s := range res.Summaries {
		e.log.Debug().
			Int("coord", d).
			Float64("mean", s.Mean).
			Float64("variance", s.Variance).
			Float64("ess", s.ESS).
			Msg("marginal")
	}
	return res, nil
}

func (e *Experiment) logFailure(err error) {
	ev := e.log.Error().Err(err)
	var stepErr *mcmc.StepError
	if errors.As(err, &stepErr) {
		ev = ev.Int("iteration", stepErr.Iteration)
	}
	ev.Msg("sampling failed")
}

func (e *Experiment) summarize(chains []*mcmc.Chain) *Result {
	res := &Result{
		Chains:  chains,
		Kept:    make([][]mcmc.State, len(chains)),
		Metrics: make(map[string]float64),
	}

	var pooled []mcmc.State
	for i, c := range chains {
		res.Kept[i] = diagnostics.Thin(c.Samples, e.cfg.BurnIn, e.cfg.Thin)
		pooled = append(pooled, res.Kept[i]...)
		res.Stats.Proposals += c.Stats.Proposals
		res.Stats.Accepted += c.Stats.Accepted
		res.Stats.Divergent += c.Stats.Divergent
	}

	dim := e.target.Dim()
	res.Summaries = make([]diagnostics.Summary, dim)
	for d := 0; d < dim; d++ {
		// ESS is summed over chains; pooling would count between-chain
		// jumps as autocorrelation.
		var ess float64
		for _, kept := range res.Kept {
			ess += diagnostics.EffectiveSampleSize(diagnostics.Column(kept, d))
		}
		s := diagnostics.Summarize(diagnostics.Column(pooled, d))
		s.ESS = ess
		if ess > 0 {
			s.StdErr = math.Sqrt(s.Variance / ess)
		}
		res.Summaries[d] = s
		res.Metrics[fmt.Sprintf("ess_x%d", d)] = ess
	}

	if len(chains) > 1 {
		res.RHat = make([]float64, dim)
		for d := 0; d < dim; d++ {
			traces := make([][]float64, len(res.Kept))
			for i, kept := range res.Kept {
				traces[i] = diagnostics.Column(kept, d)
			}
			res.RHat[d] = diagnostics.RHat(traces)
			res.Metrics[fmt.Sprintf("rhat_x%d", d)] = res.RHat[d]
		}
	}

	for name, v := range diagnostics.Evaluate(e.metrics, pooled) {
		res.Metrics[name] = v
	}
	res.Metrics["acceptance_rate"] = res.Stats.AcceptanceRate()
	res.Metrics["divergent"] = float64(res.Stats.Divergent)
	return res
}

// Metadata describes a finished run for storage.
func (e *Experiment) Metadata(res *Result) *storage.RunMetadata {
	meta := &storage.RunMetadata{
		Target:       e.cfg.Target,
		TargetParams: e.target.GetParams(),
		Sampler:      e.cfg.Sampler,
		Seed:         e.cfg.Seed,
		StepSize:     e.cfg.StepSize,
		BurnIn:       e.cfg.BurnIn,
		Thin:         e.cfg.Thin,
		Metrics:      make(map[string]float64, len(res.Metrics)),
	}
	// JSON cannot encode NaN or Inf (R-hat of a constant trace, for one).
	for k, v := range res.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[k] = v
		}
	}
	if e.cfg.Sampler == config.SamplerMetropolis {
		meta.Proposal = e.cfg.Proposal
	} else {
		mcfg := e.cfg.MCMC()
		meta.Mass = mcfg.Mass
		meta.LeapfrogSteps = mcfg.LeapfrogSteps
	}
	return meta
}
