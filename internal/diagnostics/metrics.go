package diagnostics

import (
	"fmt"
	"math"

	"github.com/san-kum/mcsim/internal/mcmc"
)

// Metric accumulates a scalar over the samples of a finished chain.
type Metric interface {
	Name() string
	Observe(x mcmc.State)
	Value() float64
	Reset()
}

// Evaluate resets every metric, feeds it the samples and collects the
// values by name.
func Evaluate(metrics []Metric, samples []mcmc.State) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		m.Reset()
		for _, x := range samples {
			m.Observe(x)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// RunningMean tracks the mean of one coordinate.
type RunningMean struct {
	name    string
	index   int
	sum     float64
	samples int
}

func NewRunningMean(index int) *RunningMean {
	return &RunningMean{name: fmt.Sprintf("mean_x%d", index), index: index}
}

func (r *RunningMean) Name() string { return r.name }

func (r *RunningMean) Observe(x mcmc.State) {
	if r.index >= len(x) {
		return
	}
	r.sum += x[r.index]
	r.samples++
}

func (r *RunningMean) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *RunningMean) Reset() {
	r.sum = 0
	r.samples = 0
}

// InBounds is the fraction of samples whose coordinates all lie within
// [-threshold, threshold].
type InBounds struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewInBounds(threshold float64) *InBounds {
	return &InBounds{
		name:      "in_bounds",
		threshold: threshold,
	}
}

func (s *InBounds) Name() string {
	return s.name
}

func (s *InBounds) Observe(x mcmc.State) {
	s.samples++
	for _, val := range x {
		if math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *InBounds) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *InBounds) Reset() {
	s.violations = 0
	s.samples = 0
}

// Jumps is the fraction of consecutive samples that differ, i.e. the
// empirical acceptance rate seen from the chain alone.
type Jumps struct {
	prev    mcmc.State
	moves   int
	samples int
}

func NewJumps() *Jumps { return &Jumps{} }

func (j *Jumps) Name() string { return "jump_rate" }

func (j *Jumps) Observe(x mcmc.State) {
	if j.prev != nil {
		j.samples++
		if !x.Equal(j.prev) {
			j.moves++
		}
	}
	j.prev = x
}

func (j *Jumps) Value() float64 {
	if j.samples == 0 {
		return 0
	}
	return float64(j.moves) / float64(j.samples)
}

func (j *Jumps) Reset() {
	j.prev = nil
	j.moves = 0
	j.samples = 0
}

// EnergyDrift is the largest relative deviation of a conserved quantity
// from its first value, used to judge integrator step sizes.
func EnergyDrift(energies []float64) float64 {
	if len(energies) == 0 {
		return 0
	}
	e0 := energies[0]
	maxDrift := 0.0
	for _, e := range energies {
		drift := math.Abs(e - e0)
		if e0 != 0 {
			drift /= math.Abs(e0)
		}
		maxDrift = math.Max(maxDrift, drift)
	}
	return maxDrift
}
