package mcmc

import (
	"context"
	"fmt"
)

// Stats counts what the transitions of one chain did.
type Stats struct {
	Proposals int
	Accepted  int
	Divergent int
}

func (s Stats) AcceptanceRate() float64 {
	if s.Proposals == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Proposals)
}

// Chain is the ordered output of one run. Samples[0] is the initial state.
type Chain struct {
	Samples []State
	Stats   Stats
}

func (c *Chain) Len() int { return len(c.Samples) }

// Column returns the trace of coordinate d.
func (c *Chain) Column(d int) []float64 {
	col := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		col[i] = s[d]
	}
	return col
}

// Dim returns the dimension of the recorded states.
func (c *Chain) Dim() int {
	if len(c.Samples) == 0 {
		return 0
	}
	return len(c.Samples[0])
}

// Run drives a single chain for n iterations. Iteration i records the state
// occupied before proposing move i, then applies the transition, so the
// initial state is the first sample and exactly n states are returned.
// On any error no partial chain is returned.
func Run(ctx context.Context, transition Transition, initial State, n int, rng Source) (*Chain, error) {
	if transition == nil {
		return nil, invalidConfig("transition is nil")
	}
	if rng == nil {
		return nil, invalidConfig("random source is nil")
	}
	if n < 1 {
		return nil, invalidConfig("num_samples must be positive, got %d", n)
	}
	if len(initial) == 0 {
		return nil, invalidConfig("initial state is empty")
	}

	chain := &Chain{Samples: make([]State, 0, n)}
	current := initial.Clone()

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("mcmc: canceled at iteration %d: %w", i, ctx.Err())
		default:
		}

		chain.Samples = append(chain.Samples, current)
		if i == n-1 {
			break
		}

		next, outcome, err := transition.Step(current, rng)
		if err != nil {
			return nil, &StepError{Iteration: i, State: current.Clone(), Wrapped: err}
		}
		chain.Stats.Proposals++
		if outcome.Accepted {
			chain.Stats.Accepted++
		}
		if outcome.Divergent {
			chain.Stats.Divergent++
		}
		current = next
	}

	return chain, nil
}

// Sample validates cfg against the target and runs one chain from the
// configured initial state.
func Sample(ctx context.Context, transition Transition, target Target, cfg Config, rng Source) (*Chain, error) {
	if target == nil {
		return nil, invalidConfig("target is nil")
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	initial, err := cfg.Initial(target.Dim())
	if err != nil {
		return nil, err
	}
	if err := checkDim(target, initial); err != nil {
		return nil, err
	}
	return Run(ctx, transition, initial, cfg.NumSamples, rng)
}
