// Package targets provides standard distributions for the samplers.
//
// Each target is an energy (negative log unnormalized density) together
// with its gradient, so it can drive both the Metropolis and the
// Hamiltonian transition:
//
//   - [Gaussian]: isotropic normal in N dimensions
//   - [Correlated]: 2-D normal with correlation rho
//   - [DoubleWell]: bimodal quartic potential
//   - [Banana]: curved Rosenbrock-style density
//   - [Uniform]: flat box, +Inf energy outside
//   - [Exponential]: one-sided, +Inf energy for negative coordinates
//   - [StudentT]: heavy-tailed location-scale family
//
// Targets implement [Target] for runtime parameter adjustment. Those with
// closed-form moments also implement [Moments]:
//
//	t, _ := targets.New("banana", map[string]float64{"b": 0.5})
//	if m, ok := t.(targets.Moments); ok {
//	    mean := m.Mean()
//	}
package targets
