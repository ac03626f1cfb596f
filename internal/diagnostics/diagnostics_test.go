package diagnostics

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mcsim/internal/mcmc"
)

func iidNormal(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = rng.NormFloat64()
	}
	return xs
}

func ar1(seed int64, n int, phi float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	for i := 1; i < n; i++ {
		xs[i] = phi*xs[i-1] + rng.NormFloat64()
	}
	return xs
}

func TestThin(t *testing.T) {
	samples := make([]mcmc.State, 10)
	for i := range samples {
		samples[i] = mcmc.State{float64(i)}
	}

	tests := []struct {
		name   string
		burnIn int
		thin   int
		want   []float64
	}{
		{"no-op", 0, 1, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"burn and thin", 2, 3, []float64{2, 5, 8}},
		{"thin below one", 8, 0, []float64{8, 9}},
		{"burn everything", 10, 1, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Column(Thin(samples, tt.burnIn, tt.thin), 0)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFFT_Impulse(t *testing.T) {
	out := FFT([]float64{1, 0, 0, 0})
	for i, c := range out {
		assert.InDelta(t, 1.0, cmplx.Abs(c), 1e-12, "bin %d", i)
	}
}

func TestFFT_OddLength(t *testing.T) {
	out := FFT([]float64{1, 2, 3})
	assert.Len(t, out, 3)
	assert.InDelta(t, 6.0, real(out[0]), 1e-12)
	assert.InDelta(t, -1.5, real(out[1]), 1e-9)
	assert.InDelta(t, math.Sqrt(3)/2, imag(out[1]), 1e-9)
}

func TestAutocorrelation_IID(t *testing.T) {
	rho := Autocorrelation(iidNormal(1, 10000), 5)
	require.Len(t, rho, 6)
	assert.InDelta(t, 1.0, rho[0], 1e-12)
	for k := 1; k <= 5; k++ {
		assert.InDelta(t, 0.0, rho[k], 0.05, "lag %d", k)
	}
}

func TestAutocorrelation_AR1(t *testing.T) {
	rho := Autocorrelation(ar1(2, 50000, 0.9), 5)
	assert.InDelta(t, 0.9, rho[1], 0.03)
	assert.InDelta(t, math.Pow(0.9, 5), rho[5], 0.06)
}

func TestAutocorrelation_Constant(t *testing.T) {
	rho := Autocorrelation([]float64{3, 3, 3, 3}, 2)
	assert.Equal(t, []float64{0, 0, 0}, rho)
}

func TestEffectiveSampleSize(t *testing.T) {
	n := 20000
	ess := EffectiveSampleSize(iidNormal(3, n))
	assert.Greater(t, ess, 0.8*float64(n))
	assert.Less(t, ess, 1.2*float64(n))

	// AR(1) tau = (1+phi)/(1-phi) = 19
	ess = EffectiveSampleSize(ar1(4, n, 0.9))
	assert.Greater(t, ess, 700.0)
	assert.Less(t, ess, 1500.0)
}

func TestEffectiveSampleSize_Antithetic(t *testing.T) {
	for _, n := range []int{5, 101, 1000} {
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = 1
			if i%2 == 1 {
				xs[i] = -1
			}
		}
		ess := EffectiveSampleSize(xs)
		limit := float64(n) * math.Log10(float64(n))
		assert.Greater(t, ess, 0.0, "n=%d", n)
		assert.LessOrEqual(t, ess, limit*(1+1e-12), "n=%d", n)

		s := Summarize(xs)
		assert.Greater(t, s.StdErr, 0.0, "n=%d", n)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 5.0/3.0, s.Variance, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.N)
}

func TestMoments(t *testing.T) {
	samples := []mcmc.State{{0, 10}, {2, 10}, {4, 10}}
	mean, variance := Moments(samples)
	assert.InDeltaSlice(t, []float64{2, 10}, mean, 1e-12)
	assert.InDeltaSlice(t, []float64{4, 0}, variance, 1e-12)
}

func TestRHat(t *testing.T) {
	agreeing := [][]float64{iidNormal(5, 5000), iidNormal(6, 5000), iidNormal(7, 5000)}
	assert.Less(t, RHat(agreeing), 1.01)

	shifted := iidNormal(8, 5000)
	for i := range shifted {
		shifted[i] += 3
	}
	disagreeing := [][]float64{iidNormal(9, 5000), shifted}
	assert.Greater(t, RHat(disagreeing), 1.5)

	assert.True(t, math.IsNaN(RHat([][]float64{{1, 2, 3}})))
}

func TestEvaluate(t *testing.T) {
	samples := []mcmc.State{{1, 0}, {1, 0}, {3, 20}, {3, 20}}
	got := Evaluate([]Metric{NewRunningMean(0), NewInBounds(10), NewJumps()}, samples)

	assert.InDelta(t, 2.0, got["mean_x0"], 1e-12)
	assert.InDelta(t, 0.5, got["in_bounds"], 1e-12)
	assert.InDelta(t, 1.0/3.0, got["jump_rate"], 1e-12)
}

func TestMetricReset(t *testing.T) {
	m := NewRunningMean(0)
	m.Observe(mcmc.State{4})
	assert.Equal(t, 4.0, m.Value())

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestEnergyDrift(t *testing.T) {
	assert.Equal(t, 0.0, EnergyDrift(nil))
	assert.InDelta(t, 0.1, EnergyDrift([]float64{1.0, 1.05, 0.9, 1.0}), 1e-12)
}
