package integrators

import (
	"testing"

	"github.com/san-kum/mcsim/internal/mcmc"
)

func BenchmarkLeapfrog(b *testing.B) {
	integ := NewLeapfrog()
	x := mcmc.State{1.0}
	v := mcmc.State{0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, v = integ.Step(x, v, harmonicGrad, 0.01)
	}
}

func BenchmarkLeapfrog_Dim20(b *testing.B) {
	integ := NewLeapfrog()
	x := make(mcmc.State, 20)
	v := make(mcmc.State, 20)
	for i := range x {
		x[i] = float64(i) * 0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, v = integ.Integrate(x, v, anharmonicGrad, 0.001, 10)
	}
}
