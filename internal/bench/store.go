// Package bench runs warehouse benchmark sweeps and indexes the results in
// SQLite.
package bench

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run describes one benchmark sweep.
type Run struct {
	ID         string
	StartedAt  time.Time
	GoVersion  string
	OS         string
	Arch       string
	CommitHash string
	Seed       int64
}

// Result stores the outcome of one planner on one instance.
type Result struct {
	RunID     string
	Instance  string
	Width     int
	Height    int
	Agents    int
	Placement string
	Solver    string
	RuntimeMs float64
	Success   bool
	Cost      int
	Makespan  int
	Moves     int
	Conflicts int
	Expanded  int
}

// SolverSummary aggregates the results of one planner within a run.
type SolverSummary struct {
	Solver       string
	Runs         int
	Successes    int
	AvgRuntimeMs float64
	AvgCost      float64
	AvgExpanded  float64
	Conflicts    int
}

// Store is the SQLite results index.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			go_version TEXT NOT NULL,
			os TEXT NOT NULL,
			arch TEXT NOT NULL,
			commit_hash TEXT NOT NULL,
			seed INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			instance TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			agents INTEGER NOT NULL,
			placement TEXT NOT NULL,
			solver TEXT NOT NULL,
			runtime_ms REAL NOT NULL,
			success INTEGER NOT NULL,
			cost INTEGER NOT NULL,
			makespan INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			conflicts INTEGER NOT NULL,
			expanded INTEGER NOT NULL,
			PRIMARY KEY (run_id, instance, solver)
		);`,
		`CREATE INDEX IF NOT EXISTS results_solver ON results(solver, agents);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun records the run header.
func (s *Store) BeginRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id, started_at, go_version, os, arch, commit_hash, seed) VALUES(?,?,?,?,?,?,?)`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.GoVersion, r.OS, r.Arch, r.CommitHash, r.Seed)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return nil
}

// Record stores one result row.
func (s *Store) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results(run_id, instance, width, height, agents, placement, solver,
			runtime_ms, success, cost, makespan, moves, conflicts, expanded)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.RunID, r.Instance, r.Width, r.Height, r.Agents, r.Placement, r.Solver,
		r.RuntimeMs, boolInt(r.Success), r.Cost, r.Makespan, r.Moves, r.Conflicts, r.Expanded)
	if err != nil {
		return fmt.Errorf("recording %s/%s: %w", r.Instance, r.Solver, err)
	}
	return nil
}

// Results lists the rows of a run ordered by instance and solver.
func (s *Store) Results(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, instance, width, height, agents, placement, solver,
			runtime_ms, success, cost, makespan, moves, conflicts, expanded
		FROM results WHERE run_id = ? ORDER BY agents, instance, solver`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r       Result
			success int
		)
		if err := rows.Scan(&r.RunID, &r.Instance, &r.Width, &r.Height, &r.Agents, &r.Placement, &r.Solver,
			&r.RuntimeMs, &success, &r.Cost, &r.Makespan, &r.Moves, &r.Conflicts, &r.Expanded); err != nil {
			return nil, err
		}
		r.Success = success != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary aggregates a run per solver. Averages cover successful rows only.
func (s *Store) Summary(ctx context.Context, runID string) ([]SolverSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT solver, COUNT(*), SUM(success),
			COALESCE(AVG(CASE WHEN success = 1 THEN runtime_ms END), 0),
			COALESCE(AVG(CASE WHEN success = 1 THEN cost END), 0),
			COALESCE(AVG(CASE WHEN success = 1 THEN expanded END), 0),
			SUM(conflicts)
		FROM results WHERE run_id = ? GROUP BY solver ORDER BY solver`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SolverSummary
	for rows.Next() {
		var m SolverSummary
		if err := rows.Scan(&m.Solver, &m.Runs, &m.Successes, &m.AvgRuntimeMs, &m.AvgCost, &m.AvgExpanded, &m.Conflicts); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
