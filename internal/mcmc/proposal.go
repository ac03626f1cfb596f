package mcmc

// Proposal perturbs the current state. Metropolis acceptance is only correct
// for symmetric proposals, q(x -> y) == q(y -> x); asymmetric proposals are
// not supported.
type Proposal interface {
	Propose(current State, scale float64, rng Source) State
}

// GaussianProposal adds independent N(0, scale^2) noise to every coordinate.
type GaussianProposal struct{}

func (GaussianProposal) Propose(current State, scale float64, rng Source) State {
	candidate := make(State, len(current))
	for i, x := range current {
		candidate[i] = x + rng.NormFloat64()*scale
	}
	return candidate
}

// UniformProposal adds independent noise drawn uniformly from [-scale, scale).
type UniformProposal struct{}

func (UniformProposal) Propose(current State, scale float64, rng Source) State {
	candidate := make(State, len(current))
	for i, x := range current {
		candidate[i] = x + (2*rng.Float64()-1)*scale
	}
	return candidate
}
