package targets

import (
	"fmt"
	"math"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// Correlated is a zero-mean 2-D normal with standard deviations Sigma1,
// Sigma2 and correlation Rho.
type Correlated struct {
	Rho            float64
	Sigma1, Sigma2 float64
}

func NewCorrelated() *Correlated {
	return &Correlated{Rho: 0.9, Sigma1: 1, Sigma2: 1}
}

func (c *Correlated) Dim() int { return 2 }

func (c *Correlated) Energy(x mcmc.State) float64 {
	a, b := x[0]/c.Sigma1, x[1]/c.Sigma2
	return (a*a - 2*c.Rho*a*b + b*b) / (2 * (1 - c.Rho*c.Rho))
}

func (c *Correlated) Gradient(x mcmc.State) mcmc.State {
	a, b := x[0]/c.Sigma1, x[1]/c.Sigma2
	k := 1 - c.Rho*c.Rho
	return mcmc.State{
		(a - c.Rho*b) / (k * c.Sigma1),
		(b - c.Rho*a) / (k * c.Sigma2),
	}
}

func (c *Correlated) Mean() mcmc.State { return mcmc.State{0, 0} }
func (c *Correlated) Variance() mcmc.State {
	return mcmc.State{c.Sigma1 * c.Sigma1, c.Sigma2 * c.Sigma2}
}

func (c *Correlated) GetParams() map[string]float64 {
	return map[string]float64{"rho": c.Rho, "sigma1": c.Sigma1, "sigma2": c.Sigma2}
}

func (c *Correlated) SetParam(name string, v float64) error {
	switch name {
	case "rho":
		if math.IsNaN(v) || math.Abs(v) >= 1 {
			return fmt.Errorf("%w: rho must lie in (-1, 1), got %g", ErrInvalidParam, v)
		}
		c.Rho = v
	case "sigma1":
		if err := positive(name, v); err != nil {
			return err
		}
		c.Sigma1 = v
	case "sigma2":
		if err := positive(name, v); err != nil {
			return err
		}
		c.Sigma2 = v
	default:
		return unknownParam("correlated", name)
	}
	return nil
}
