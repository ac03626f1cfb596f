// Package mcmc provides the core Markov-chain Monte-Carlo sampling engine.
//
// The package defines the primitives shared by every sampler:
//
//   - [State]: position in the sampled space
//   - [Target]: energy (negative log unnormalized density) of a distribution
//   - [Transition]: one Markov step, proposal plus accept/reject
//   - [Metropolis]: random-walk Metropolis with a symmetric proposal
//   - [Hamiltonian]: Hamiltonian Monte Carlo over an injected [Integrator]
//   - [Run]: the chain driver that records states and applies a transition
//
// # Example
//
//	target := mcmc.FromEnergy(1, func(x mcmc.State) float64 { return 0.5 * x[0] * x[0] })
//	mh, _ := mcmc.NewMetropolis(target, mcmc.GaussianProposal{}, 1.0)
//	chain, _ := mcmc.Run(ctx, mh, mcmc.State{0}, 10000, mcmc.NewSource(42))
//
// # Thread Safety
//
// Transitions hold only read-only configuration and may be shared between
// goroutines as long as every chain owns its own [Source]. Use [Ensemble]
// to run independent chains concurrently.
package mcmc
