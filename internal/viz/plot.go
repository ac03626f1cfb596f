package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"
)

var chainColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Green,
	asciigraph.Red, asciigraph.Blue, asciigraph.White,
}

// Trace plots one or more traces over each other, one color per chain.
func Trace(series [][]float64, caption string, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	}
	if len(series) == 1 {
		return asciigraph.Plot(series[0], opts...)
	}

	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range colors {
		colors[i] = chainColors[i%len(chainColors)]
	}
	opts = append(opts, asciigraph.SeriesColors(colors...))
	return asciigraph.PlotMany(series, opts...)
}

// ACF plots autocorrelations with the y axis pinned to [-1, 1].
func ACF(rho []float64, caption string, width, height int) string {
	if len(rho) == 0 {
		return ""
	}
	return asciigraph.Plot(rho,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(-1),
		asciigraph.UpperBound(1),
		asciigraph.Caption(caption),
	)
}

// HistogramCounts bins xs into bins equal-width bins spanning its range.
// edges has bins+1 entries.
func HistogramCounts(xs []float64, bins int) (edges, counts []float64) {
	if len(xs) == 0 || bins < 1 {
		return nil, nil
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + (hi-lo)*float64(i)/float64(bins)
	}
	// stat.Histogram excludes the upper edge.
	edges[bins] = math.Nextafter(hi, math.Inf(1))

	counts = stat.Histogram(nil, edges, sorted, nil)
	return edges, counts
}

// Histogram renders a horizontal bar histogram, one row per bin.
func Histogram(xs []float64, bins, width int) string {
	edges, counts := HistogramCounts(xs, bins)
	if counts == nil {
		return ""
	}

	peak := 0.0
	for _, c := range counts {
		peak = math.Max(peak, c)
	}

	var b strings.Builder
	for i, c := range counts {
		n := 0
		if peak > 0 {
			n = int(math.Round(c / peak * float64(width)))
		}
		label := fmt.Sprintf("%9.3f", (edges[i]+edges[i+1])/2)
		b.WriteString(MetricLabel.Render(label))
		b.WriteString(" ")
		b.WriteString(SparkHigh.Render(strings.Repeat("█", n)))
		b.WriteString(Subtle.Render(fmt.Sprintf(" %d", int(c))))
		b.WriteString("\n")
	}
	return b.String()
}
