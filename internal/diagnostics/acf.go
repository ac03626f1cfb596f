package diagnostics

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// FFT computes the discrete Fourier transform of a real signal of any
// length.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Autocorrelation returns rho[0..maxLag] of xs, computed through the FFT of
// the zero-padded centered series. rho[0] is 1 unless xs is constant.
func Autocorrelation(xs []float64, maxLag int) []float64 {
	n := len(xs)
	if n == 0 {
		return nil
	}
	if maxLag >= n || maxLag < 0 {
		maxLag = n - 1
	}

	// Padding to a power of two keeps go-dsp on its radix-2 path.
	mean := stat.Mean(xs, nil)
	size := nextPow2(2 * n)
	padded := make([]complex128, size)
	for i, x := range xs {
		padded[i] = complex(x-mean, 0)
	}

	spectrum := fft.FFT(padded)
	for i, c := range spectrum {
		spectrum[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	acov := fft.IFFT(spectrum)

	rho := make([]float64, maxLag+1)
	c0 := real(acov[0])
	if c0 == 0 {
		return rho
	}
	for k := 0; k <= maxLag; k++ {
		rho[k] = real(acov[k]) / c0
	}
	return rho
}

// EffectiveSampleSize estimates n / tau with Geyer's initial monotone
// positive sequence. The estimate is capped at n*log10(n) for strongly
// antithetic chains.
func EffectiveSampleSize(xs []float64) float64 {
	n := len(xs)
	if n < 4 {
		return float64(n)
	}
	rho := Autocorrelation(xs, n-1)
	if rho[0] == 0 {
		return 1
	}

	tau := -1.0
	prev := math.Inf(1)
	for k := 0; 2*k+1 < len(rho); k++ {
		pair := rho[2*k] + rho[2*k+1]
		if pair < 0 {
			break
		}
		if pair > prev {
			pair = prev
		}
		tau += 2 * pair
		prev = pair
	}

	// Antithetic chains can drive tau to zero or below; the floor makes
	// n*log10(n) the largest reported ESS.
	tau = math.Max(tau, 1/math.Log10(float64(n)))
	return float64(n) / tau
}
