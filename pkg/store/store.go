// Package store snapshots pipeline runs into a local sqlite database so a
// run's tables can be inspected later without re-fetching anything.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yumyai/slnet/pkg/dgidb"
	"github.com/yumyai/slnet/pkg/pipeline"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS interactions (
	run_id   TEXT NOT NULL,
	gene_a   TEXT NOT NULL,
	gene_b   TEXT NOT NULL,
	evidence TEXT NOT NULL,
	score    REAL NOT NULL,
	support  INTEGER NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs (run_id)
);
CREATE TABLE IF NOT EXISTS drug_targets (
	run_id       TEXT NOT NULL,
	gene         TEXT NOT NULL,
	drug         TEXT NOT NULL,
	publications INTEGER NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs (run_id)
);
`

type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the snapshot database.
func Open(path string) (*Store, error) {

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewRun registers a run and returns its ID.
func (s *Store) NewRun(ctx context.Context) (string, error) {

	runID := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("register run: %w", err)
	}
	return runID, nil
}

// SaveCombined stores the merged interaction table under a run.
func (s *Store) SaveCombined(ctx context.Context, runID string, rows []pipeline.CombinedRow) error {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stm, err := tx.PrepareContext(ctx,
		`INSERT INTO interactions (run_id, gene_a, gene_b, evidence, score, support)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stm.Close()

	for _, r := range rows {
		if _, err := stm.ExecContext(ctx, runID, r.GeneA, r.GeneB, r.Evidence, r.Score, r.Support); err != nil {
			return fmt.Errorf("insert interaction: %w", err)
		}
	}

	return tx.Commit()
}

// SaveDrugTargets stores the annotation picks under a run.
func (s *Store) SaveDrugTargets(ctx context.Context, runID string, targets []dgidb.DrugTarget) error {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stm, err := tx.PrepareContext(ctx,
		`INSERT INTO drug_targets (run_id, gene, drug, publications) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stm.Close()

	for _, t := range targets {
		if _, err := stm.ExecContext(ctx, runID, t.Gene, t.Drug, t.Support); err != nil {
			return fmt.Errorf("insert drug target: %w", err)
		}
	}

	return tx.Commit()
}

// LoadCombined reads a run's interaction table back, in the same order the
// pipeline produced it.
func (s *Store) LoadCombined(ctx context.Context, runID string) ([]pipeline.CombinedRow, error) {

	rows, err := s.db.QueryContext(ctx,
		`SELECT gene_a, gene_b, evidence, score, support
		 FROM interactions WHERE run_id = ?
		 ORDER BY gene_a, gene_b`, runID)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []pipeline.CombinedRow
	for rows.Next() {
		var r pipeline.CombinedRow
		if err := rows.Scan(&r.GeneA, &r.GeneB, &r.Evidence, &r.Score, &r.Support); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("interaction rows: %w", err)
	}
	return out, nil
}

// LoadDrugTargets reads a run's drug picks back.
func (s *Store) LoadDrugTargets(ctx context.Context, runID string) ([]dgidb.DrugTarget, error) {

	rows, err := s.db.QueryContext(ctx,
		`SELECT gene, drug, publications
		 FROM drug_targets WHERE run_id = ?
		 ORDER BY gene`, runID)
	if err != nil {
		return nil, fmt.Errorf("query drug targets: %w", err)
	}
	defer rows.Close()

	var out []dgidb.DrugTarget
	for rows.Next() {
		var t dgidb.DrugTarget
		if err := rows.Scan(&t.Gene, &t.Drug, &t.Support); err != nil {
			return nil, fmt.Errorf("scan drug target: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("drug target rows: %w", err)
	}
	return out, nil
}
