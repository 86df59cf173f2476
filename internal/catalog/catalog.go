// Package catalog persists run metadata in SQLite: every report or render
// invocation records where its artifacts were written and which figures it
// produced, so past outputs stay discoverable from the CLI and the web UI.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps the catalog database. The embedded *sql.DB is exported the
// usual way so callers can run ad-hoc queries against the catalog.
type Store struct {
	*sql.DB
}

// Open opens (creating if necessary) the catalog database at path, applies
// the connection pragmas and runs any pending migrations.
func Open(path string) (*Store, error) {
	store, err := OpenNoMigrate(path)
	if err != nil {
		return nil, err
	}

	if err := store.MigrateUp(); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}

// OpenNoMigrate opens the catalog database without touching the schema.
// The db subcommands use it so that version and down act on the database
// as it stands.
func OpenNoMigrate(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}

	// journal_mode persists in the database file, but busy_timeout,
	// synchronous and temp_store are per-connection. A single pooled
	// connection keeps them in force for every query.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	return &Store{db}, nil
}

// Run is one recorded invocation that produced artifacts.
type Run struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	OutputDir string    `json:"output_dir"`
	Figures   int       `json:"figures"`
	CreatedAt time.Time `json:"created_at"`
}

// FigureRecord describes one figure produced by a run. Paths are relative
// to the run's output directory.
type FigureRecord struct {
	RunID    string `json:"run_id"`
	Name     string `json:"name"`
	Rows     int    `json:"rows"`
	HTMLPath string `json:"html_path"`
	PNGPath  string `json:"png_path"`
	CSVPath  string `json:"csv_path"`
}

// NewRun creates a Run with a fresh ID and the current time. Timestamps are
// stored at second precision.
func NewRun(kind, outputDir string) Run {
	return Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		OutputDir: outputDir,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// RecordRun stores a run and its figure records in one transaction.
func (s *Store) RecordRun(run Run, figs []FigureRecord) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	if run.Kind == "" {
		return fmt.Errorf("run kind is required")
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, kind, output_dir, figures, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.OutputDir, len(figs), run.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, fig := range figs {
		_, err = tx.Exec(
			`INSERT INTO run_figures (run_id, name, row_count, html_path, png_path, csv_path)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, fig.Name, fig.Rows, fig.HTMLPath, fig.PNGPath, fig.CSVPath,
		)
		if err != nil {
			return fmt.Errorf("inserting figure %q: %w", fig.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns up to 50 runs.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.Query(
		`SELECT id, kind, output_dir, figures, created_at FROM runs
		 ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt int64
		if err := rows.Scan(&run.ID, &run.Kind, &run.OutputDir, &run.Figures, &createdAt); err != nil {
			return nil, err
		}
		run.CreatedAt = time.Unix(createdAt, 0).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// RunFigures returns the figure records for a run, ordered by name. An
// unknown run ID yields an empty slice.
func (s *Store) RunFigures(runID string) ([]FigureRecord, error) {
	rows, err := s.Query(
		`SELECT run_id, name, row_count, html_path, png_path, csv_path FROM run_figures
		 WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var figs []FigureRecord
	for rows.Next() {
		var fig FigureRecord
		if err := rows.Scan(&fig.RunID, &fig.Name, &fig.Rows, &fig.HTMLPath, &fig.PNGPath, &fig.CSVPath); err != nil {
			return nil, err
		}
		figs = append(figs, fig)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return figs, nil
}
