package targets

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// StudentT has independent location-scale Student's t coordinates with Nu
// degrees of freedom.
type StudentT struct {
	N             int
	Nu, Mu, Sigma float64
}

func NewStudentT(n int) *StudentT {
	return &StudentT{N: n, Nu: 5, Mu: 0, Sigma: 1}
}

func (s *StudentT) Dim() int { return s.N }

func (s *StudentT) Energy(x mcmc.State) float64 {
	e := 0.0
	for _, xi := range x {
		z := (xi - s.Mu) / s.Sigma
		e += 0.5 * (s.Nu + 1) * math.Log1p(z*z/s.Nu)
	}
	return e
}

func (s *StudentT) Gradient(x mcmc.State) mcmc.State {
	grad := make(mcmc.State, len(x))
	for i, xi := range x {
		d := xi - s.Mu
		grad[i] = (s.Nu + 1) * d / (s.Nu*s.Sigma*s.Sigma + d*d)
	}
	return grad
}

func (s *StudentT) LogProb(x mcmc.State) float64 {
	d := distuv.StudentsT{Mu: s.Mu, Sigma: s.Sigma, Nu: s.Nu}
	lp := 0.0
	for _, xi := range x {
		lp += d.LogProb(xi)
	}
	return lp
}

// Mean is NaN for Nu <= 1.
func (s *StudentT) Mean() mcmc.State {
	if s.Nu <= 1 {
		return fill(s.N, math.NaN())
	}
	return fill(s.N, s.Mu)
}

// Variance is +Inf for 1 < Nu <= 2 and NaN for Nu <= 1.
func (s *StudentT) Variance() mcmc.State {
	d := distuv.StudentsT{Mu: s.Mu, Sigma: s.Sigma, Nu: s.Nu}
	switch {
	case s.Nu <= 1:
		return fill(s.N, math.NaN())
	case s.Nu <= 2:
		return fill(s.N, math.Inf(1))
	}
	return fill(s.N, d.Variance())
}

func (s *StudentT) GetParams() map[string]float64 {
	return map[string]float64{"dim": float64(s.N), "nu": s.Nu, "mu": s.Mu, "sigma": s.Sigma}
}

func (s *StudentT) SetParam(name string, v float64) error {
	switch name {
	case "dim":
		n, err := dimension(v)
		if err != nil {
			return err
		}
		s.N = n
	case "nu":
		if err := positive(name, v); err != nil {
			return err
		}
		s.Nu = v
	case "mu":
		if err := finite(name, v); err != nil {
			return err
		}
		s.Mu = v
	case "sigma":
		if err := positive(name, v); err != nil {
			return err
		}
		s.Sigma = v
	default:
		return unknownParam("studentt", name)
	}
	return nil
}
