package mcmc

import (
	"fmt"
	"math"
)

// Metropolis is the random-walk Metropolis transition.
type Metropolis struct {
	target    Target
	proposal  Proposal
	stepScale float64
}

// NewMetropolis validates stepScale and returns the transition. A nil
// proposal selects GaussianProposal.
func NewMetropolis(target Target, proposal Proposal, stepScale float64) (*Metropolis, error) {
	if target == nil {
		return nil, invalidConfig("target is nil")
	}
	if target.Dim() < 1 {
		return nil, invalidConfig("target dimension must be at least 1, got %d", target.Dim())
	}
	if !(stepScale > 0) || math.IsInf(stepScale, 0) {
		return nil, invalidConfig("step size must be positive and finite, got %g", stepScale)
	}
	if proposal == nil {
		proposal = GaussianProposal{}
	}
	return &Metropolis{target: target, proposal: proposal, stepScale: stepScale}, nil
}

func (m *Metropolis) Target() Target { return m.target }

// Step proposes current+step and accepts it with probability
// min(1, exp(E(current) - E(candidate))).
func (m *Metropolis) Step(current State, rng Source) (State, Outcome, error) {
	candidate := m.proposal.Propose(current, m.stepScale, rng)

	e0 := m.target.Energy(current)
	e1 := m.target.Energy(candidate)
	alpha, err := AcceptProbability(e0, e1)
	if err != nil {
		return current, Outcome{}, fmt.Errorf("metropolis: E(current)=%g E(candidate)=%g: %w", e0, e1, err)
	}

	if rng.Float64() < alpha {
		return candidate, Outcome{Accepted: true}, nil
	}
	return current, Outcome{}, nil
}
