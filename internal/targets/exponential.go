package targets

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// Exponential has independent Exp(Rate) coordinates. Negative coordinates
// have +Inf energy.
type Exponential struct {
	N    int
	Rate float64
}

func NewExponential(n int) *Exponential {
	return &Exponential{N: n, Rate: 1}
}

func (e *Exponential) Dim() int { return e.N }

func (e *Exponential) Energy(x mcmc.State) float64 {
	sum := 0.0
	for _, xi := range x {
		if xi < 0 {
			return math.Inf(1)
		}
		sum += xi
	}
	return e.Rate * sum
}

func (e *Exponential) Gradient(x mcmc.State) mcmc.State {
	return fill(len(x), e.Rate)
}

func (e *Exponential) LogProb(x mcmc.State) float64 {
	d := distuv.Exponential{Rate: e.Rate}
	lp := 0.0
	for _, xi := range x {
		lp += d.LogProb(xi)
	}
	return lp
}

func (e *Exponential) Mean() mcmc.State     { return fill(e.N, 1/e.Rate) }
func (e *Exponential) Variance() mcmc.State { return fill(e.N, 1/(e.Rate*e.Rate)) }

func (e *Exponential) GetParams() map[string]float64 {
	return map[string]float64{"dim": float64(e.N), "rate": e.Rate}
}

func (e *Exponential) SetParam(name string, v float64) error {
	switch name {
	case "dim":
		n, err := dimension(v)
		if err != nil {
			return err
		}
		e.N = n
	case "rate":
		if err := positive(name, v); err != nil {
			return err
		}
		e.Rate = v
	default:
		return unknownParam("exponential", name)
	}
	return nil
}
