package targets

import (
	"github.com/san-kum/mcsim/internal/mcmc"
)

// DoubleWell is the bistable potential U = A(x^2 - B)^2 applied to every
// coordinate. Its modes sit at +-sqrt(B) with a barrier of height A*B^2.
type DoubleWell struct {
	N    int
	A, B float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{N: 1, A: 1.0, B: 1.0}
}

func (d *DoubleWell) Dim() int { return d.N }

func (d *DoubleWell) Energy(x mcmc.State) float64 {
	e := 0.0
	for _, xi := range x {
		w := xi*xi - d.B
		e += d.A * w * w
	}
	return e
}

func (d *DoubleWell) Gradient(x mcmc.State) mcmc.State {
	grad := make(mcmc.State, len(x))
	for i, xi := range x {
		grad[i] = 4 * d.A * xi * (xi*xi - d.B)
	}
	return grad
}

// Barrier is the energy difference between a mode and the origin.
func (d *DoubleWell) Barrier() float64 { return d.A * d.B * d.B }

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"dim": float64(d.N), "A": d.A, "B": d.B}
}

func (d *DoubleWell) SetParam(name string, v float64) error {
	switch name {
	case "dim":
		n, err := dimension(v)
		if err != nil {
			return err
		}
		d.N = n
	case "A":
		if err := positive(name, v); err != nil {
			return err
		}
		d.A = v
	case "B":
		if err := finite(name, v); err != nil {
			return err
		}
		d.B = v
	default:
		return unknownParam("doublewell", name)
	}
	return nil
}
