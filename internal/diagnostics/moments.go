package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// Thin drops the first burnIn samples and keeps every thin-th of the rest.
// thin < 1 is treated as 1.
func Thin(samples []mcmc.State, burnIn, thin int) []mcmc.State {
	if thin < 1 {
		thin = 1
	}
	if burnIn < 0 {
		burnIn = 0
	}
	if burnIn >= len(samples) {
		return []mcmc.State{}
	}
	kept := make([]mcmc.State, 0, (len(samples)-burnIn+thin-1)/thin)
	for i := burnIn; i < len(samples); i += thin {
		kept = append(kept, samples[i])
	}
	return kept
}

// Column extracts coordinate d from every sample.
func Column(samples []mcmc.State, d int) []float64 {
	col := make([]float64, len(samples))
	for i, s := range samples {
		col[i] = s[d]
	}
	return col
}

// Summary describes the marginal trace of one coordinate.
type Summary struct {
	N        int
	Mean     float64
	Variance float64
	ESS      float64
	StdErr   float64
	Min, Max float64
}

func Summarize(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	s.Mean, s.Variance = stat.MeanVariance(xs, nil)
	if len(xs) < 2 {
		s.Variance = 0
	}
	s.ESS = EffectiveSampleSize(xs)
	if s.ESS > 0 {
		s.StdErr = math.Sqrt(s.Variance / s.ESS)
	}
	s.Min, s.Max = xs[0], xs[0]
	for _, x := range xs[1:] {
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
	}
	return s
}

// Moments returns per-coordinate means and variances of the samples.
func Moments(samples []mcmc.State) (mean, variance mcmc.State) {
	if len(samples) == 0 {
		return nil, nil
	}
	dim := len(samples[0])
	mean = make(mcmc.State, dim)
	variance = make(mcmc.State, dim)
	for d := 0; d < dim; d++ {
		mean[d], variance[d] = stat.MeanVariance(Column(samples, d), nil)
	}
	return mean, variance
}

// StandardError is the Monte-Carlo standard error of the mean, corrected
// for autocorrelation through the effective sample size.
func StandardError(xs []float64) float64 {
	return Summarize(xs).StdErr
}
