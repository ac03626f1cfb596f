package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/experiment"
	"github.com/san-kum/mcsim/internal/mcmc"
	"github.com/san-kum/mcsim/internal/optim"
	"github.com/san-kum/mcsim/internal/storage"
	"github.com/san-kum/mcsim/internal/viz"
)

// resolveConfig layers the run configuration: defaults, then the preset,
// then the config file, then MCSIM_* variables, then explicit flags.
func resolveConfig(cmd *cobra.Command, args []string, env config.Env) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Target = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Target, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (have %v)", preset, cfg.Target, config.ListPresets(cfg.Target))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Target = args[0]
	}

	env.Apply(cfg)

	flags := cmd.Flags()
	if flags.Changed("sampler") {
		cfg.Sampler = sampler
	}
	if flags.Changed("proposal") {
		cfg.Proposal = proposal
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("step") {
		cfg.StepSize = stepSize
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("leapfrog") {
		cfg.LeapfrogSteps = leapfrogSteps
	}
	if flags.Changed("skip-negation") {
		cfg.SkipVelocityNegation = skipNegation
	}
	if flags.Changed("chains") {
		cfg.Chains = chains
	}
	if flags.Changed("burn-in") {
		cfg.BurnIn = burnIn
	}
	if flags.Changed("thin") {
		cfg.Thin = thin
	}
	if flags.Changed("init") {
		cfg.InitialState = append([]float64(nil), initState...)
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("param") {
		params, err := parseParams(targetParams)
		if err != nil {
			return nil, err
		}
		merged := make(map[string]float64, len(cfg.TargetParams)+len(params))
		for k, v := range cfg.TargetParams {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		cfg.TargetParams = merged
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func parseParams(raw map[string]string) (map[string]float64, error) {
	params := make(map[string]float64, len(raw))
	for k, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", k, err)
		}
		params[k] = v
	}
	return params, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func openStore() (storage.Store, error) {
	st, err := storage.Open(storeKind, dataDir)
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runSampler(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args, env)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	if !noSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.Save(exp.Metadata(res), res.Chains)
		if err != nil {
			return err
		}
		printf(cmd, "run id: %s\n", runID)
	}

	printf(cmd, "%s / %s: %d chain(s) x %d samples in %v\n",
		cfg.Target, cfg.Sampler, len(res.Chains), cfg.Samples, res.Elapsed.Round(time.Millisecond))
	printf(cmd, "%s\n", viz.Metric("acceptance", res.Stats.AcceptanceRate()))
	if res.Stats.Divergent > 0 {
		printf(cmd, "%s\n", viz.Warning.Render(fmt.Sprintf("%d divergent trajectories", res.Stats.Divergent)))
	}
	printf(cmd, "%s\n", summaryTable(res))
	return nil
}

func summaryTable(res *experiment.Result) string {
	header := []string{"coord", "mean", "variance", "ess", "std err"}
	if res.RHat != nil {
		header = append(header, "r-hat")
	}
	rows := make([][]string, len(res.Summaries))
	for d, s := range res.Summaries {
		row := []string{
			fmt.Sprintf("x%d", d),
			fmt.Sprintf("%.4f", s.Mean),
			fmt.Sprintf("%.4f", s.Variance),
			fmt.Sprintf("%.0f", s.ESS),
			fmt.Sprintf("%.4f", s.StdErr),
		}
		if res.RHat != nil {
			row = append(row, fmt.Sprintf("%.3f", res.RHat[d]))
		}
		rows[d] = row
	}
	return viz.Table(header, rows)
}

func tuneStep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	target, err := reg.GetTarget(cfg.Target, cfg.TargetParams)
	if err != nil {
		return err
	}
	initial, err := cfg.MCMC().Initial(target.Dim())
	if err != nil {
		return err
	}

	rate := optim.MetropolisTargetRate
	steps := optim.LogGrid(0.01, 20, 30)
	if cfg.Sampler == config.SamplerHamiltonian {
		rate = optim.HamiltonianTargetRate
		steps = optim.LogGrid(0.005, 2, 30)
	}

	build := func(params map[string]float64) (mcmc.Transition, error) {
		c := cfg.Clone()
		c.StepSize = params["step_size"]
		return reg.BuildTransition(target, c)
	}
	pilot := optim.Pilot{Initial: initial, Samples: min(cfg.Samples, 5000), Seed: cfg.Seed}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info().Str("target", cfg.Target).Str("sampler", cfg.Sampler).Float64("target_rate", rate).Msg("tuning step size")
	best, err := optim.NewGridSearch([]string{"step_size"}, [][]float64{steps}).Search(ctx, build, pilot, rate)
	if err != nil {
		return err
	}

	printf(cmd, "best step size: %.4g\n", best.Params["step_size"])
	printf(cmd, "%s\n", viz.Metric("acceptance", best.AcceptanceRate))
	printf(cmd, "%s\n", viz.Metric("target", rate))
	return nil
}

type comparison struct {
	sampler    string
	acceptance float64
	minESS     float64
	elapsed    time.Duration
	divergent  int
}

func compareSamplers(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args, env)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	reg := experiment.NewRegistry()
	var results []comparison
	for _, name := range reg.ListSamplers() {
		cfg := base.Clone()
		cfg.Sampler = name

		exp := experiment.New(cfg, log)
		if err := exp.Setup(reg); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		c := comparison{
			sampler:    name,
			acceptance: res.Stats.AcceptanceRate(),
			minESS:     math.Inf(1),
			elapsed:    res.Elapsed,
			divergent:  res.Stats.Divergent,
		}
		for _, s := range res.Summaries {
			c.minESS = math.Min(c.minESS, s.ESS)
		}
		results = append(results, c)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].sampler < results[j].sampler })
	rows := make([][]string, len(results))
	for i, c := range results {
		perSec := 0.0
		if c.elapsed > 0 {
			perSec = c.minESS / c.elapsed.Seconds()
		}
		rows[i] = []string{
			c.sampler,
			fmt.Sprintf("%.3f", c.acceptance),
			fmt.Sprintf("%.0f", c.minESS),
			fmt.Sprintf("%.0f", perSec),
			c.elapsed.Round(time.Millisecond).String(),
			strconv.Itoa(c.divergent),
		}
	}
	printf(cmd, "%s\n", viz.Table([]string{"sampler", "acceptance", "min ess", "ess/s", "elapsed", "divergent"}, rows))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := experiment.NewRegistry().ListTargets()
	if len(args) == 1 {
		names = []string{args[0]}
	}
	for _, target := range names {
		presets := config.ListPresets(target)
		if len(presets) == 0 {
			if len(args) == 1 {
				return fmt.Errorf("no presets for %s", target)
			}
			continue
		}
		printf(cmd, "%s\n", viz.Title.Render(target))
		for _, name := range presets {
			p := config.GetPreset(target, name)
			printf(cmd, "  %-10s %-12s step=%g samples=%d\n", name, p.Sampler, p.StepSize, p.Samples)
		}
	}
	return nil
}
