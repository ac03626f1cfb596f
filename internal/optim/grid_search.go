package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// Acceptance rates that are roughly optimal in high dimensions.
const (
	MetropolisTargetRate  = 0.234
	HamiltonianTargetRate = 0.65
)

var ErrNoCandidate = errors.New("optim: no parameter combination produced a chain")

// BuildFunc turns one grid point into a transition.
type BuildFunc func(params map[string]float64) (mcmc.Transition, error)

// Pilot describes the short chain run at every grid point. Every point uses
// the same seed so that differences come from the parameters alone.
type Pilot struct {
	Initial mcmc.State
	Samples int
	Seed    int64
}

type Result struct {
	Params         map[string]float64
	AcceptanceRate float64
	Score          float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// LogGrid returns n points spaced evenly in log scale over [lo, hi].
func LogGrid(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.LogSpan(make([]float64, n), lo, hi)
}

// Search runs a pilot chain at every grid point and returns the point whose
// acceptance rate is closest to targetRate. Points whose transition cannot
// be built or whose pilot fails are skipped. Ties keep the earlier point.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, pilot Pilot, targetRate float64) (Result, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Result{}, fmt.Errorf("optim: %d parameter names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Result{Score: math.Inf(1)}
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), build, pilot, targetRate, &best); err != nil {
		return Result{}, err
	}
	if best.Params == nil {
		return Result{}, ErrNoCandidate
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	pilot Pilot,
	targetRate float64,
	best *Result,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		transition, err := build(current)
		if err != nil {
			return nil
		}

		chain, err := mcmc.Run(ctx, transition, pilot.Initial, pilot.Samples, mcmc.NewSource(pilot.Seed))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		}

		rate := chain.Stats.AcceptanceRate()
		score := math.Abs(rate - targetRate)
		if score < best.Score {
			best.Score = score
			best.AcceptanceRate = rate
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, pilot, targetRate, best); err != nil {
			return err
		}
	}
	return nil
}
