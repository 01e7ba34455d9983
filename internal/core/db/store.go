package db

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
	"github.com/solatis/pipecrack/internal/types"
)

// All store SQL lives in one named-query file; it is embedded directly
// instead of walked from a query directory.
//
//go:embed queries/runs.sql
var runsSQL string

// Named queries in queries/runs.sql.
const (
	queryInsertRun = "insert-run"
	queryInsertHit = "insert-hit"
	queryGetRun    = "get-run"
	queryListRuns  = "list-runs"
	queryListHits  = "list-hits"
)

// RunRecord is one stored search run.
type RunRecord struct {
	RunID        string  `db:"run_id"`
	Pipeline     string  `db:"pipeline"`
	KeyCount     int     `db:"key_count"`
	TotalTuples  int64   `db:"total_tuples"`
	Attempts     int64   `db:"attempts"`
	HitCount     int     `db:"hit_count"`
	FailedChunks int     `db:"failed_chunks"`
	Threshold    float64 `db:"threshold"`
	ElapsedMs    int64   `db:"elapsed_ms"`
	CreatedAt    string  `db:"created_at"`
}

// HitRecord is one stored ranked hit. Meta holds the rendered metadata in
// the same form the CLI prints, so stored hits replay verbatim.
type HitRecord struct {
	RunID string  `db:"run_id"`
	Rank  int     `db:"rank"`
	Score float64 `db:"score"`
	Meta  string  `db:"meta"`
}

// Store persists runs and their ranked hits.
type Store struct {
	db  *sqlx.DB
	dot *dotsql.DotSql
}

// NewStore parses the embedded named queries over an open connection.
func NewStore(database *sqlx.DB) (*Store, error) {
	dot, err := dotsql.LoadFromString(runsSQL)
	if err != nil {
		return nil, fmt.Errorf("parse store queries: %w", err)
	}
	return &Store{db: database, dot: dot}, nil
}

// raw looks up a named query and rebinds ? placeholders to the connected
// driver's style, so the same SQL serves sqlite and postgres.
func (s *Store) raw(name string) (string, error) {
	query, err := s.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", name, err)
	}
	return s.db.Rebind(query), nil
}

// RecordRun inserts the run row and one row per ranked hit, all in a
// single transaction: a run row with its hits missing would be
// unreproducible, so partial records never commit. Hits are ranked
// 1-based in the given order.
func (s *Store) RecordRun(run RunRecord, hits []types.Hit) error {
	if run.CreatedAt == "" {
		run.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	insertRun, err := s.raw(queryInsertRun)
	if err != nil {
		return err
	}
	insertHit, err := s.raw(queryInsertHit)
	if err != nil {
		return err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin record of run %s: %w", run.RunID, err)
	}

	_, err = tx.Exec(insertRun,
		run.RunID, run.Pipeline, run.KeyCount, run.TotalTuples, run.Attempts,
		run.HitCount, run.FailedChunks, run.Threshold, run.ElapsedMs, run.CreatedAt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	for i, h := range hits {
		if _, err := tx.Exec(insertHit, run.RunID, i+1, h.Score, h.Meta.String()); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert hit %d of run %s: %w", i+1, run.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.RunID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. UUIDv7 run IDs are
// time-ordered, so ordering by ID orders by creation time.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit < 1 {
		limit = 20
	}
	query, err := s.raw(queryListRuns)
	if err != nil {
		return nil, err
	}
	var runs []RunRecord
	if err := s.db.Select(&runs, query, limit); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one stored run by ID.
func (s *Store) GetRun(id types.RunID) (RunRecord, error) {
	query, err := s.raw(queryGetRun)
	if err != nil {
		return RunRecord{}, err
	}
	var run RunRecord
	if err := s.db.Get(&run, query, string(id)); err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// RunHits returns a stored run's hits in rank order.
func (s *Store) RunHits(id types.RunID) ([]HitRecord, error) {
	query, err := s.raw(queryListHits)
	if err != nil {
		return nil, err
	}
	var hits []HitRecord
	if err := s.db.Select(&hits, query, string(id)); err != nil {
		return nil, fmt.Errorf("list hits of run %s: %w", id, err)
	}
	return hits, nil
}
