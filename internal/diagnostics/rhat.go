package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RHat is the Gelman-Rubin potential scale reduction of a set of traces.
// Traces are truncated to the shortest; fewer than two traces or fewer than
// two samples give NaN.
func RHat(traces [][]float64) float64 {
	m := len(traces)
	if m < 2 {
		return math.NaN()
	}
	n := len(traces[0])
	for _, t := range traces[1:] {
		if len(t) < n {
			n = len(t)
		}
	}
	if n < 2 {
		return math.NaN()
	}

	means := make([]float64, m)
	vars := make([]float64, m)
	for j, t := range traces {
		means[j], vars[j] = stat.MeanVariance(t[:n], nil)
	}

	nf := float64(n)
	b := nf * stat.Variance(means, nil)
	w := stat.Mean(vars, nil)
	if w == 0 {
		if b == 0 {
			return 1
		}
		return math.Inf(1)
	}

	pooled := (nf-1)/nf*w + b/nf
	return math.Sqrt(pooled / w)
}
