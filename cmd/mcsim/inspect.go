package main

import (
	"fmt"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/mcsim/internal/diagnostics"
	"github.com/san-kum/mcsim/internal/mcmc"
	"github.com/san-kum/mcsim/internal/storage"
	"github.com/san-kum/mcsim/internal/targets"
	"github.com/san-kum/mcsim/internal/viz"
)

func loadRun(runID string) (*storage.RunMetadata, [][]mcmc.State, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", runID, err)
	}
	chains, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", runID, err)
	}
	return meta, chains, nil
}

func checkCoord(meta *storage.RunMetadata, d int) error {
	return checkCoordDim(d, meta.Dim)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printf(cmd, "no runs found\n")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTARGET\tSAMPLER\tDIM\tCHAINS\tSAMPLES\tACCEPT\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.3f\t%s\n",
			r.ID, r.Target, r.Sampler, r.Dim, r.Chains, r.Samples,
			r.Stats.AcceptanceRate(), r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, chains, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := checkCoord(meta, coord); err != nil {
		return err
	}

	var series [][]float64
	switch {
	case plotChain < 0:
		for _, c := range chains {
			series = append(series, diagnostics.Column(c, coord))
		}
	case plotChain < len(chains):
		series = [][]float64{diagnostics.Column(chains[plotChain], coord)}
	default:
		return fmt.Errorf("chain %d out of range (%d chains)", plotChain, len(chains))
	}

	caption := fmt.Sprintf("%s %s x%d", meta.Target, meta.Sampler, coord)
	printf(cmd, "%s\n", viz.Trace(series, caption, width, height))
	return nil
}

func histRun(cmd *cobra.Command, args []string) error {
	meta, chains, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := checkCoord(meta, coord); err != nil {
		return err
	}

	var xs []float64
	for _, c := range chains {
		xs = append(xs, diagnostics.Column(diagnostics.Thin(c, meta.BurnIn, meta.Thin), coord)...)
	}
	printf(cmd, "%s\n", viz.Title.Render(fmt.Sprintf("%s x%d (%d samples)", meta.Target, coord, len(xs))))
	printf(cmd, "%s", viz.Histogram(xs, bins, width-20))
	return nil
}

func acfRun(cmd *cobra.Command, args []string) error {
	meta, chains, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := checkCoord(meta, coord); err != nil {
		return err
	}
	if chainIdx < 0 || chainIdx >= len(chains) {
		return fmt.Errorf("chain %d out of range (%d chains)", chainIdx, len(chains))
	}

	xs := diagnostics.Column(diagnostics.Thin(chains[chainIdx], meta.BurnIn, meta.Thin), coord)
	rho := diagnostics.Autocorrelation(xs, maxLag)
	caption := fmt.Sprintf("autocorrelation x%d, ess %.0f of %d", coord, diagnostics.EffectiveSampleSize(xs), len(xs))
	printf(cmd, "%s\n", viz.ACF(rho, caption, width, height))
	return nil
}

func diagnoseRun(cmd *cobra.Command, args []string) error {
	meta, chains, err := loadRun(args[0])
	if err != nil {
		return err
	}

	kept := make([][]mcmc.State, len(chains))
	var pooled []mcmc.State
	for i, c := range chains {
		kept[i] = diagnostics.Thin(c, meta.BurnIn, meta.Thin)
		pooled = append(pooled, kept[i]...)
	}

	var exact targets.Moments
	if t, err := targets.New(meta.Target, meta.TargetParams); err == nil {
		exact, _ = t.(targets.Moments)
	}

	header := []string{"coord", "mean", "variance", "ess", "std err", "r-hat"}
	if exact != nil {
		header = append(header, "exact mean", "exact var", "z")
	}

	rows := make([][]string, meta.Dim)
	for d := 0; d < meta.Dim; d++ {
		var ess float64
		traces := make([][]float64, len(kept))
		for i, k := range kept {
			traces[i] = diagnostics.Column(k, d)
			ess += diagnostics.EffectiveSampleSize(traces[i])
		}
		s := diagnostics.Summarize(diagnostics.Column(pooled, d))
		se := math.NaN()
		if ess > 0 {
			se = math.Sqrt(s.Variance / ess)
		}

		row := []string{
			fmt.Sprintf("x%d", d),
			fmt.Sprintf("%.4f", s.Mean),
			fmt.Sprintf("%.4f", s.Variance),
			fmt.Sprintf("%.0f", ess),
			fmt.Sprintf("%.4f", se),
			fmt.Sprintf("%.3f", diagnostics.RHat(traces)),
		}
		if exact != nil {
			mu, v := exact.Mean()[d], exact.Variance()[d]
			row = append(row, fmt.Sprintf("%.4f", mu), fmt.Sprintf("%.4f", v), fmt.Sprintf("%+.2f", (s.Mean-mu)/se))
		}
		rows[d] = row
	}

	printf(cmd, "%s\n", viz.Title.Render(fmt.Sprintf("%s (%s, %d chains)", meta.ID, meta.Sampler, len(chains))))
	printf(cmd, "%s\n", viz.Metric("acceptance", meta.Stats.AcceptanceRate()))
	printf(cmd, "%s\n", viz.Table(header, rows))

	if len(meta.Metrics) > 0 {
		names := make([]string, 0, len(meta.Metrics))
		for k := range meta.Metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			printf(cmd, "%s\n", viz.Metric(k, meta.Metrics[k]))
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, chains, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, chains)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, chains, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(cmd.OutOrStdout(), chains)
}
