package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/silence-breaker/vtbench/internal/harness"
)

// Run is one recorded testbench run.
type Run struct {
	ID         string    `json:"id"`
	Bench      string    `json:"bench"`
	StartedAt  time.Time `json:"started_at"`
	Vectors    int       `json:"vectors"`
	Mismatches int       `json:"mismatches"`
	Pass       bool      `json:"pass"`
}

// RecordRun persists a run verdict and its mismatches in one
// transaction. Returns the generated run ID.
func (s *Store) RecordRun(ctx context.Context, bench string, startedAt time.Time, result *harness.Result) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, bench, started_at, vectors, mismatches, pass)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, bench, startedAt.UTC().Format(time.RFC3339Nano),
		result.Checked, len(result.Mismatches), boolToInt(result.Pass))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, m := range result.Mismatches {
		inputs, err := json.Marshal(m.Inputs)
		if err != nil {
			return "", fmt.Errorf("marshal inputs: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO mismatches (run_id, idx, signal, got, want, inputs)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, m.Index, m.Signal, int64(m.Got), int64(m.Want), string(inputs))
		if err != nil {
			return "", fmt.Errorf("insert mismatch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListRuns returns recorded runs, most recent first. bench filters to one
// bench when non-empty; limit caps the result when positive.
func (s *Store) ListRuns(ctx context.Context, bench string, limit int) ([]Run, error) {
	query := `SELECT id, bench, started_at, vectors, mismatches, pass FROM runs`
	var args []any
	if bench != "" {
		query += ` WHERE bench = ?`
		args = append(args, bench)
	}
	query += ` ORDER BY started_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		var pass int
		if err := rows.Scan(&r.ID, &r.Bench, &started, &r.Vectors, &r.Mismatches, &pass); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", started, err)
		}
		r.Pass = pass == 1
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunMismatches returns the mismatches recorded for one run, in stimulus
// order.
func (s *Store) RunMismatches(ctx context.Context, runID string) ([]harness.Mismatch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, signal, got, want, inputs FROM mismatches
		 WHERE run_id = ? ORDER BY idx, signal`, runID)
	if err != nil {
		return nil, fmt.Errorf("query mismatches: %w", err)
	}
	defer rows.Close()

	var out []harness.Mismatch
	for rows.Next() {
		var m harness.Mismatch
		var got, want int64
		var inputs string
		if err := rows.Scan(&m.Index, &m.Signal, &got, &want, &inputs); err != nil {
			return nil, fmt.Errorf("scan mismatch: %w", err)
		}
		m.Got, m.Want = uint64(got), uint64(want)
		if err := json.Unmarshal([]byte(inputs), &m.Inputs); err != nil {
			return nil, fmt.Errorf("unmarshal inputs: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
