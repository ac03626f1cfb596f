package mcmc

import (
	"context"
	"sync"
)

// Ensemble runs independent chains of one transition concurrently. Chain i
// draws from NewSource(seedStart + i); the transition and target are shared
// read-only.
type Ensemble struct {
	transition Transition
	numChains  int
	seedStart  int64
}

func NewEnsemble(t Transition, numChains int, seedStart int64) *Ensemble {
	return &Ensemble{transition: t, numChains: numChains, seedStart: seedStart}
}

// Run starts every chain from a copy of initial and returns the chains in
// index order, or the first error encountered.
func (e *Ensemble) Run(ctx context.Context, initial State, n int) ([]*Chain, error) {
	if e.numChains < 1 {
		return nil, invalidConfig("chains must be positive, got %d", e.numChains)
	}

	chains := make([]*Chain, e.numChains)
	errs := make([]error, e.numChains)

	var wg sync.WaitGroup
	for i := 0; i < e.numChains; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := NewSource(e.seedStart + int64(idx))
			chains[idx], errs[idx] = Run(ctx, e.transition, initial, n, rng)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return chains, nil
}
