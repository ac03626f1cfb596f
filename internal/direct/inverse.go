// Package direct draws independent samples by inverting a cumulative
// distribution function. It is the i.i.d. baseline the Markov-chain
// samplers are compared against.
package direct

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/mcsim/internal/mcmc"
)

var ErrUnknownDistribution = errors.New("direct: unknown distribution")

// InverseCDF samples x = Quantile(u) for u uniform on (0, 1).
type InverseCDF struct {
	Quantile func(p float64) float64
}

// Sample draws n independent values. u == 0 is redrawn so the quantile is
// never evaluated at the edge of its domain.
func (s InverseCDF) Sample(n int, rng mcmc.Source) []float64 {
	out := make([]float64, n)
	for i := range out {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		out[i] = s.Quantile(u)
	}
	return out
}

// Exponential returns the closed-form inverse x = -log(1-u) / rate.
func Exponential(rate float64) InverseCDF {
	return InverseCDF{Quantile: func(p float64) float64 {
		return -math.Log1p(-p) / rate
	}}
}

// Normal inverts the normal CDF through gonum.
func Normal(mu, sigma float64) InverseCDF {
	d := distuv.Normal{Mu: mu, Sigma: sigma}
	return InverseCDF{Quantile: d.Quantile}
}

// StudentT inverts the location-scale Student's t CDF through gonum.
func StudentT(nu, mu, sigma float64) InverseCDF {
	d := distuv.StudentsT{Mu: mu, Sigma: sigma, Nu: nu}
	return InverseCDF{Quantile: d.Quantile}
}

// Uniform maps u linearly onto [low, high).
func Uniform(low, high float64) InverseCDF {
	d := distuv.Uniform{Min: low, Max: high}
	return InverseCDF{Quantile: d.Quantile}
}

// Named builds an inverse-CDF sampler from a name and parameters, using the
// same parameter names as the targets package.
func Named(name string, params map[string]float64) (InverseCDF, error) {
	get := func(key string, def float64) float64 {
		if v, ok := params[key]; ok {
			return v
		}
		return def
	}

	switch name {
	case "exponential":
		rate := get("rate", 1)
		if !(rate > 0) {
			return InverseCDF{}, fmt.Errorf("direct: rate must be positive, got %g", rate)
		}
		return Exponential(rate), nil
	case "gaussian", "normal":
		sigma := get("sigma", 1)
		if !(sigma > 0) {
			return InverseCDF{}, fmt.Errorf("direct: sigma must be positive, got %g", sigma)
		}
		return Normal(get("mu", 0), sigma), nil
	case "studentt":
		nu, sigma := get("nu", 5), get("sigma", 1)
		if !(nu > 0) || !(sigma > 0) {
			return InverseCDF{}, fmt.Errorf("direct: nu and sigma must be positive, got %g, %g", nu, sigma)
		}
		return StudentT(nu, get("mu", 0), sigma), nil
	case "uniform":
		low, high := get("low", -1), get("high", 1)
		if !(low < high) {
			return InverseCDF{}, fmt.Errorf("direct: low %g must be below high %g", low, high)
		}
		return Uniform(low, high), nil
	}
	return InverseCDF{}, fmt.Errorf("%w: %s", ErrUnknownDistribution, name)
}
