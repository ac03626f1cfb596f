package integrators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/mcsim/internal/mcmc"
)

func harmonicGrad(x mcmc.State) mcmc.State {
	return x.Clone()
}

// anharmonicGrad is the gradient of U(x) = sum x^4/4 + sin(x) + 0.3*x0*x1.
func anharmonicGrad(x mcmc.State) mcmc.State {
	g := make(mcmc.State, len(x))
	for i, xi := range x {
		g[i] = xi*xi*xi + math.Cos(xi)
	}
	if len(x) > 1 {
		g[0] += 0.3 * x[1]
		g[1] += 0.3 * x[0]
	}
	return g
}

func pendulumGrad(x mcmc.State) mcmc.State {
	return mcmc.State{math.Sin(x[0])}
}

// eulerStep is the forward-Euler update, kept here only as the
// counter-example to leapfrog: it is neither reversible nor area preserving.
func eulerStep(x, v mcmc.State, grad mcmc.GradientFunc, dt float64) (mcmc.State, mcmc.State) {
	g := grad(x)
	xn := make(mcmc.State, len(x))
	vn := make(mcmc.State, len(v))
	for i := range x {
		xn[i] = x[i] + dt*v[i]
		vn[i] = v[i] - dt*g[i]
	}
	return xn, vn
}

func negate(v mcmc.State) mcmc.State {
	return v.Scale(-1)
}

func TestLeapfrogAccuracy(t *testing.T) {
	integ := NewLeapfrog()
	x := mcmc.State{1.0}
	v := mcmc.State{0.0}
	dt := 0.01
	steps := 100

	x, v = integ.Integrate(x, v, harmonicGrad, dt, steps)

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(v[0]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", v[0], expectedV)
	}
}

func TestLeapfrogDoesNotMutateInputs(t *testing.T) {
	integ := NewLeapfrog()
	x0 := mcmc.State{0.3, -1.2}
	v0 := mcmc.State{0.5, 0.1}
	xCopy, vCopy := x0.Clone(), v0.Clone()

	integ.Integrate(x0, v0, anharmonicGrad, 0.1, 10)

	if !x0.Equal(xCopy) || !v0.Equal(vCopy) {
		t.Errorf("inputs mutated: x0=%v v0=%v", x0, v0)
	}
}

func TestLeapfrogReversibility(t *testing.T) {
	integ := NewLeapfrog()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		dim := 1 + rng.Intn(3)
		x := make(mcmc.State, dim)
		v := make(mcmc.State, dim)
		for i := range x {
			x[i] = rng.Float64()*4 - 2
			v[i] = rng.Float64()*4 - 2
		}
		dt := 0.01 + rng.Float64()*0.2
		steps := 1
		if trial%2 == 1 {
			steps = 1 + rng.Intn(10)
		}

		x1, v1 := integ.Integrate(x, v, anharmonicGrad, dt, steps)
		x2, v2 := integ.Integrate(x1, negate(v1), anharmonicGrad, dt, steps)
		v2 = negate(v2)

		for i := range x {
			if math.Abs(x2[i]-x[i]) > 1e-9 || math.Abs(v2[i]-v[i]) > 1e-9 {
				t.Fatalf("trial %d (dt=%.3f, steps=%d): got (%v, %v), want (%v, %v)",
					trial, dt, steps, x2, v2, x, v)
			}
		}
	}
}

func TestEulerIsNotReversible(t *testing.T) {
	x := mcmc.State{1.0}
	v := mcmc.State{0.5}

	x1, v1 := eulerStep(x, v, harmonicGrad, 0.1)
	x2, v2 := eulerStep(x1, negate(v1), harmonicGrad, 0.1)
	v2 = negate(v2)

	if math.Abs(x2[0]-x[0]) < 1e-6 && math.Abs(v2[0]-v[0]) < 1e-6 {
		t.Errorf("forward euler unexpectedly reversible: (%v, %v)", x2, v2)
	}
}

// polygonArea is the shoelace area of a closed (x, v) polygon, taken
// relative to the first vertex to avoid cancellation.
func polygonArea(xs, vs []float64) float64 {
	area := 0.0
	n := len(xs)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, vi := xs[i]-xs[0], vs[i]-vs[0]
		xj, vj := xs[j]-xs[0], vs[j]-vs[0]
		area += xi*vj - xj*vi
	}
	return math.Abs(area) / 2
}

type stepFunc func(x, v mcmc.State, grad mcmc.GradientFunc, dt float64) (mcmc.State, mcmc.State)

// areaRatios maps a small circle of initial conditions around (cx, cv)
// through the stepper and returns area(k)/area(0) for k = 1..iterations.
func areaRatios(step stepFunc, grad mcmc.GradientFunc, cx, cv, radius, dt float64, iterations int) []float64 {
	const vertices = 64
	xs := make([]mcmc.State, vertices)
	vs := make([]mcmc.State, vertices)
	for i := 0; i < vertices; i++ {
		a := 2 * math.Pi * float64(i) / vertices
		xs[i] = mcmc.State{cx + radius*math.Cos(a)}
		vs[i] = mcmc.State{cv + radius*math.Sin(a)}
	}

	area := func() float64 {
		px := make([]float64, vertices)
		pv := make([]float64, vertices)
		for i := range xs {
			px[i], pv[i] = xs[i][0], vs[i][0]
		}
		return polygonArea(px, pv)
	}

	a0 := area()
	ratios := make([]float64, 0, iterations)
	for k := 0; k < iterations; k++ {
		for i := range xs {
			xs[i], vs[i] = step(xs[i], vs[i], grad, dt)
		}
		ratios = append(ratios, area()/a0)
	}
	return ratios
}

func TestLeapfrogPreservesPhaseSpaceArea(t *testing.T) {
	integ := NewLeapfrog()

	tests := []struct {
		name string
		grad mcmc.GradientFunc
		tol  float64
	}{
		{"harmonic", harmonicGrad, 1e-9},
		{"pendulum", pendulumGrad, 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratios := areaRatios(integ.Step, tt.grad, 0.5, 0.0, 1e-3, 0.1, 20)
			for k, r := range ratios {
				if math.Abs(r-1) > tt.tol {
					t.Errorf("iteration %d: area ratio %.12f drifted beyond %g", k+1, r, tt.tol)
				}
			}
		})
	}
}

func TestEulerGrowsPhaseSpaceArea(t *testing.T) {
	for _, grad := range []mcmc.GradientFunc{harmonicGrad, pendulumGrad} {
		ratios := areaRatios(eulerStep, grad, 0.5, 0.0, 1e-3, 0.1, 20)
		prev := 1.0
		for k, r := range ratios {
			if r <= prev {
				t.Fatalf("iteration %d: euler area ratio %.6f did not grow from %.6f", k+1, r, prev)
			}
			prev = r
		}
		if ratios[len(ratios)-1] < 1.1 {
			t.Errorf("euler area ratio after 20 steps = %.4f, expected > 1.1", ratios[len(ratios)-1])
		}
	}
}

func TestLeapfrogBoundedEnergyDrift(t *testing.T) {
	integ := NewLeapfrog()
	energy := func(x, v mcmc.State) float64 { return 0.5*x[0]*x[0] + 0.5*v[0]*v[0] }

	xs, vs := integ.Trajectory(mcmc.State{1}, mcmc.State{0}, harmonicGrad, 0.1, 10000)
	if len(xs) != 10001 || len(vs) != 10001 {
		t.Fatalf("trajectory length = %d/%d, want 10001", len(xs), len(vs))
	}

	e0 := energy(xs[0], vs[0])
	maxDrift := 0.0
	for i := range xs {
		maxDrift = math.Max(maxDrift, math.Abs(energy(xs[i], vs[i])-e0)/e0)
	}
	if maxDrift > 0.01 {
		t.Errorf("leapfrog energy drift %.4e exceeds bound", maxDrift)
	}

	x, v := mcmc.State{1}, mcmc.State{0}
	for i := 0; i < 10000; i++ {
		x, v = eulerStep(x, v, harmonicGrad, 0.1)
	}
	if euler := energy(x, v); euler < 10*e0 {
		t.Errorf("euler energy %.4e expected to spiral outward", euler)
	}
}
