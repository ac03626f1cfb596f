package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/mcsim/internal/mcmc"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	target     TEXT NOT NULL,
	sampler    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	meta_json  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	chain      INTEGER NOT NULL,
	iter       INTEGER NOT NULL,
	state_json TEXT NOT NULL,
	PRIMARY KEY (run_id, chain, iter)
);
`

// SQLiteStore keeps every run in one database file: metadata in runs and
// one row per sample in samples.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init creates the parent directory, opens the database and applies the
// schema. It is safe to call more than once.
func (s *SQLiteStore) Init() error {
	if s.db != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// The pragma goes in the DSN so every pooled connection enforces it.
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) open() error {
	if s.db == nil {
		return s.Init()
	}
	return nil
}

func (s *SQLiteStore) Save(meta *RunMetadata, chains []*mcmc.Chain) (string, error) {
	if err := s.open(); err != nil {
		return "", err
	}
	if err := prepare(meta, chains); err != nil {
		return "", err
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, target, sampler, created_at, meta_json) VALUES (?, ?, ?, ?, ?)`,
		meta.ID, meta.Target, meta.Sampler, meta.Timestamp.Format(time.RFC3339Nano), string(metaJSON),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO samples (run_id, chain, iter, state_json) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare samples: %w", err)
	}
	defer stmt.Close()

	for c, chain := range chains {
		for i, state := range chain.Samples {
			stateJSON, err := json.Marshal([]float64(state))
			if err != nil {
				return "", fmt.Errorf("chain %d sample %d: %w", c, i, err)
			}
			if _, err := stmt.Exec(meta.ID, c, i, string(stateJSON)); err != nil {
				return "", fmt.Errorf("insert sample: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return meta.ID, nil
}

func (s *SQLiteStore) List() ([]RunMetadata, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT meta_json FROM runs ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var meta RunMetadata
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	sortRuns(runs)
	return runs, nil
}

func (s *SQLiteStore) Load(runID string) (*RunMetadata, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	var raw string
	err := s.db.QueryRow(`SELECT meta_json FROM runs WHERE id = ?`, runID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var meta RunMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("storage: metadata of %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *SQLiteStore) LoadSamples(runID string) ([][]mcmc.State, error) {
	if _, err := s.Load(runID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT chain, state_json FROM samples WHERE run_id = ? ORDER BY chain ASC, iter ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	chains := make([][]mcmc.State, 0)
	for rows.Next() {
		var c int
		var raw string
		if err := rows.Scan(&c, &raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var state []float64
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, fmt.Errorf("decode sample: %w", err)
		}
		for len(chains) <= c {
			chains = append(chains, []mcmc.State{})
		}
		chains[c] = append(chains[c], state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return chains, nil
}
