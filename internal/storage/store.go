// Package storage persists sampling runs. A run is its metadata plus the
// samples of every chain, in chain order.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/mcsim/internal/mcmc"
)

var ErrNotFound = errors.New("storage: run not found")

type RunMetadata struct {
	ID            string             `json:"id"`
	Target        string             `json:"target"`
	TargetParams  map[string]float64 `json:"target_params,omitempty"`
	Sampler       string             `json:"sampler"`
	Proposal      string             `json:"proposal,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Samples       int                `json:"samples"`
	Dim           int                `json:"dim"`
	StepSize      float64            `json:"step_size"`
	Mass          float64            `json:"mass,omitempty"`
	LeapfrogSteps int                `json:"leapfrog_steps,omitempty"`
	Chains        int                `json:"chains"`
	BurnIn        int                `json:"burn_in"`
	Thin          int                `json:"thin"`
	Stats         mcmc.Stats         `json:"stats"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
}

// Store is implemented by every run backend.
type Store interface {
	Init() error
	Save(meta *RunMetadata, chains []*mcmc.Chain) (string, error)
	List() ([]RunMetadata, error)
	Load(runID string) (*RunMetadata, error)
	LoadSamples(runID string) ([][]mcmc.State, error)
	Close() error
}

// NewRunID returns "<target>_<first 8 hex digits of a random UUID>".
func NewRunID(target string) string {
	return fmt.Sprintf("%s_%s", target, uuid.NewString()[:8])
}

// Open returns the backend named kind rooted at dir: "file" keeps one
// directory per run, "sqlite" keeps a single runs.db.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case "", "file":
		return NewFileStore(dir), nil
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dir, "runs.db")), nil
	}
	return nil, fmt.Errorf("storage: unknown backend %q", kind)
}

// prepare fills the fields derived from the chains and assigns an ID if
// the caller did not.
func prepare(meta *RunMetadata, chains []*mcmc.Chain) error {
	if len(chains) == 0 {
		return errors.New("storage: no chains to save")
	}
	if meta.ID == "" {
		meta.ID = NewRunID(meta.Target)
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	meta.Chains = len(chains)
	meta.Samples = chains[0].Len()
	meta.Dim = chains[0].Dim()

	var total mcmc.Stats
	for _, c := range chains {
		total.Proposals += c.Stats.Proposals
		total.Accepted += c.Stats.Accepted
		total.Divergent += c.Stats.Divergent
	}
	meta.Stats = total
	return nil
}

func sortRuns(runs []RunMetadata) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
}
