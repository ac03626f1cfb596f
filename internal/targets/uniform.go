package targets

import (
	"fmt"
	"math"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// Uniform is flat on the box [Low, High]^N. Outside the box the energy is
// +Inf, so every proposal that leaves it is rejected.
type Uniform struct {
	N         int
	Low, High float64
}

func NewUniform(n int) *Uniform {
	return &Uniform{N: n, Low: -1, High: 1}
}

func (u *Uniform) Dim() int { return u.N }

func (u *Uniform) Energy(x mcmc.State) float64 {
	for _, xi := range x {
		if xi < u.Low || xi > u.High {
			return math.Inf(1)
		}
	}
	return 0
}

func (u *Uniform) Gradient(x mcmc.State) mcmc.State {
	return make(mcmc.State, len(x))
}

func (u *Uniform) Mean() mcmc.State { return fill(u.N, (u.Low+u.High)/2) }

func (u *Uniform) Variance() mcmc.State {
	w := u.High - u.Low
	return fill(u.N, w*w/12)
}

// Validate checks the bounds once all parameters are set.
func (u *Uniform) Validate() error {
	if !(u.Low < u.High) {
		return fmt.Errorf("%w: low %g must be below high %g", ErrInvalidParam, u.Low, u.High)
	}
	return nil
}

func (u *Uniform) GetParams() map[string]float64 {
	return map[string]float64{"dim": float64(u.N), "low": u.Low, "high": u.High}
}

func (u *Uniform) SetParam(name string, v float64) error {
	switch name {
	case "dim":
		n, err := dimension(v)
		if err != nil {
			return err
		}
		u.N = n
	case "low":
		if err := finite(name, v); err != nil {
			return err
		}
		u.Low = v
	case "high":
		if err := finite(name, v); err != nil {
			return err
		}
		u.High = v
	default:
		return unknownParam("uniform", name)
	}
	return nil
}
