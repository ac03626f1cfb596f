package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/logging"
)

var (
	dataDir   string
	storeKind string
	logLevel  string
	env       config.Env
	log       zerolog.Logger

	// run, compare and tune
	sampler       string
	proposal      string
	samples       int
	stepSize      float64
	mass          float64
	leapfrogSteps int
	skipNegation  bool
	chains        int
	burnIn        int
	thin          int
	seed          int64
	initState     []float64
	targetParams  map[string]string
	configFile    string
	preset        string
	noSave        bool

	// inspection
	chainIdx  int
	plotChain int
	coord     int
	bins      int
	maxLag    int
	width     int
	height    int

	// integrate
	x0        []float64
	v0        []float64
	dt        float64
	numSteps  int
	drawCount int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mcsim",
		Short:        "markov chain monte carlo sampling lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			env, err = config.LoadEnv()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("data") {
				dataDir = env.DataDir
			}
			if !cmd.Flags().Changed("store") {
				storeKind = env.Store
			}
			if !cmd.Flags().Changed("log-level") {
				logLevel = env.LogLevel
			}
			log = logging.Setup(logLevel, os.Stderr)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mcsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "file", "run store backend (file|sqlite)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	runCmd := &cobra.Command{
		Use:   "run [target]",
		Short: "sample a target and store the chains",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSampler,
	}
	addSamplerFlags(runCmd)
	runCmd.Flags().IntVar(&chains, "chains", config.DefaultChains, "number of independent chains")
	runCmd.Flags().IntVar(&burnIn, "burn-in", 0, "samples discarded before diagnostics")
	runCmd.Flags().IntVar(&thin, "thin", config.DefaultThin, "keep every n-th sample for diagnostics")
	runCmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state (comma separated)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot sample traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addViewFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotChain, "chain", -1, "chain to plot (-1 overlays all)")

	histCmd := &cobra.Command{
		Use:   "hist [run_id]",
		Short: "histogram of one coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  histRun,
	}
	addViewFlags(histCmd)
	histCmd.Flags().IntVar(&bins, "bins", 20, "number of bins")

	acfCmd := &cobra.Command{
		Use:   "acf [run_id]",
		Short: "autocorrelation of one coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  acfRun,
	}
	addViewFlags(acfCmd)
	acfCmd.Flags().IntVar(&maxLag, "lags", 50, "largest lag")
	acfCmd.Flags().IntVar(&chainIdx, "chain", 0, "chain to analyze")

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose [run_id]",
		Short: "moments, effective sample size and R-hat of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  diagnoseRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [target]",
		Short: "grid search the step size toward the optimal acceptance rate",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneStep,
	}
	addSamplerFlags(tuneCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [target]",
		Short: "compare metropolis and hamiltonian sampling efficiency",
		Args:  cobra.ExactArgs(1),
		RunE:  compareSamplers,
	}
	addSamplerFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [target]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	inverseCmd := &cobra.Command{
		Use:   "inverse [distribution]",
		Short: "draw independent samples by inverse-CDF",
		Args:  cobra.ExactArgs(1),
		RunE:  inverseSample,
	}
	inverseCmd.Flags().IntVar(&drawCount, "n", 10000, "number of draws")
	inverseCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	inverseCmd.Flags().StringToStringVar(&targetParams, "param", nil, "distribution parameters (name=value)")
	inverseCmd.Flags().IntVar(&bins, "bins", 20, "number of bins")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "step through a stored chain interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().IntVar(&chainIdx, "chain", 0, "chain to replay")

	integrateCmd := &cobra.Command{
		Use:   "integrate [target]",
		Short: "follow one leapfrog trajectory and report energy drift",
		Args:  cobra.ExactArgs(1),
		RunE:  integrateTrajectory,
	}
	integrateCmd.Flags().Float64SliceVar(&x0, "x0", nil, "initial position (default: ones)")
	integrateCmd.Flags().Float64SliceVar(&v0, "v0", nil, "initial velocity (default: zeros)")
	integrateCmd.Flags().Float64Var(&dt, "dt", 0.1, "time step")
	integrateCmd.Flags().IntVar(&numSteps, "steps", 100, "number of leapfrog steps")
	integrateCmd.Flags().StringToStringVar(&targetParams, "param", nil, "target parameters (name=value)")
	addViewFlags(integrateCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, histCmd, acfCmd, diagnoseCmd, exportJSONCmd, exportCSVCmd,
		tuneCmd, compareCmd, presetsCmd, inverseCmd, replayCmd, integrateCmd)

	return rootCmd
}

func addSamplerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sampler, "sampler", config.SamplerMetropolis, "sampler (metropolis|hamiltonian)")
	cmd.Flags().StringVar(&proposal, "proposal", "gaussian", "metropolis proposal (gaussian|uniform)")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "samples per chain")
	cmd.Flags().Float64Var(&stepSize, "step", config.DefaultStepSize, "proposal scale or leapfrog step size")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "hamiltonian mass")
	cmd.Flags().IntVar(&leapfrogSteps, "leapfrog", config.DefaultLeapfrogSteps, "leapfrog steps per hamiltonian proposal")
	cmd.Flags().BoolVar(&skipNegation, "skip-negation", false, "skip the final velocity negation")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringToStringVar(&targetParams, "param", nil, "target parameters (name=value)")
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&coord, "coord", 0, "state coordinate")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 12, "plot height")
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
