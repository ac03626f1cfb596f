package targets

import (
	"github.com/san-kum/mcsim/internal/mcmc"
)

// Banana is the twisted Gaussian x ~ N(0, S^2), y | x ~ N(B x^2, 1).
// Random-walk proposals mix slowly along its curved ridge.
type Banana struct {
	S, B float64
}

func NewBanana() *Banana {
	return &Banana{S: 1, B: 0.5}
}

func (b *Banana) Dim() int { return 2 }

func (b *Banana) Energy(x mcmc.State) float64 {
	r := x[1] - b.B*x[0]*x[0]
	return 0.5*x[0]*x[0]/(b.S*b.S) + 0.5*r*r
}

func (b *Banana) Gradient(x mcmc.State) mcmc.State {
	r := x[1] - b.B*x[0]*x[0]
	return mcmc.State{
		x[0]/(b.S*b.S) - 2*b.B*x[0]*r,
		r,
	}
}

func (b *Banana) Mean() mcmc.State { return mcmc.State{0, b.B * b.S * b.S} }

func (b *Banana) Variance() mcmc.State {
	s2 := b.S * b.S
	return mcmc.State{s2, 1 + 2*b.B*b.B*s2*s2}
}

func (b *Banana) GetParams() map[string]float64 {
	return map[string]float64{"s": b.S, "b": b.B}
}

func (b *Banana) SetParam(name string, v float64) error {
	switch name {
	case "s":
		if err := positive(name, v); err != nil {
			return err
		}
		b.S = v
	case "b":
		if err := finite(name, v); err != nil {
			return err
		}
		b.B = v
	default:
		return unknownParam("banana", name)
	}
	return nil
}
