package targets

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// Gaussian is the isotropic normal N(Mu, Sigma^2 I) in N dimensions.
type Gaussian struct {
	N         int
	Mu, Sigma float64
}

func NewGaussian(n int) *Gaussian {
	return &Gaussian{N: n, Mu: 0, Sigma: 1}
}

func (g *Gaussian) Dim() int { return g.N }

func (g *Gaussian) Energy(x mcmc.State) float64 {
	e := 0.0
	for _, xi := range x {
		d := (xi - g.Mu) / g.Sigma
		e += 0.5 * d * d
	}
	return e
}

func (g *Gaussian) Gradient(x mcmc.State) mcmc.State {
	grad := make(mcmc.State, len(x))
	s2 := g.Sigma * g.Sigma
	for i, xi := range x {
		grad[i] = (xi - g.Mu) / s2
	}
	return grad
}

// LogProb is the normalized log density.
func (g *Gaussian) LogProb(x mcmc.State) float64 {
	d := distuv.Normal{Mu: g.Mu, Sigma: g.Sigma}
	lp := 0.0
	for _, xi := range x {
		lp += d.LogProb(xi)
	}
	return lp
}

func (g *Gaussian) Mean() mcmc.State     { return fill(g.N, g.Mu) }
func (g *Gaussian) Variance() mcmc.State { return fill(g.N, g.Sigma*g.Sigma) }

func (g *Gaussian) GetParams() map[string]float64 {
	return map[string]float64{"dim": float64(g.N), "mu": g.Mu, "sigma": g.Sigma}
}

func (g *Gaussian) SetParam(name string, v float64) error {
	switch name {
	case "dim":
		n, err := dimension(v)
		if err != nil {
			return err
		}
		g.N = n
	case "mu":
		if err := finite(name, v); err != nil {
			return err
		}
		g.Mu = v
	case "sigma":
		if err := positive(name, v); err != nil {
			return err
		}
		g.Sigma = v
	default:
		return unknownParam("gaussian", name)
	}
	return nil
}
