// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records pipeline runs in a local SQLite database so
// previous conversions can be inspected with the report command.
package manifest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/szebenyib/swf-to-pdf/pkg/types"
)

// dbFile is the manifest database, kept alongside the processed files.
const dbFile = ".swf2pdf.db"

// Store manages the run manifest database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database inside dir and ensures the
// schema exists.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating manifest schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			stage TEXT NOT NULL,
			dir TEXT NOT NULL,
			x_size INTEGER NOT NULL,
			y_size INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			width INTEGER,
			height INTEGER,
			duration_ms INTEGER,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts a run row and returns its ID.
func (s *Store) BeginRun(run types.RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, stage, dir, x_size, y_size) VALUES (?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339), run.Stage, run.Dir, run.XSize, run.YSize,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// RecordFile appends one file outcome to a run.
func (s *Store) RecordFile(runID int64, rec types.FileRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO files (run_id, name, status, width, height, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.Name, string(rec.Status), rec.Width, rec.Height,
		rec.Duration.Milliseconds(), rec.Error,
	)
	if err != nil {
		return fmt.Errorf("recording file %s: %w", rec.Name, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first, without their files.
func (s *Store) Runs(limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, stage, dir, x_size, y_size
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run returns one run including its file records. An id of zero selects
// the most recent run. A nil record with nil error means the manifest is
// empty.
func (s *Store) Run(id int64) (*types.RunRecord, error) {
	query := `SELECT id, started_at, stage, dir, x_size, y_size FROM runs `
	var row *sql.Row
	if id == 0 {
		row = s.db.QueryRow(query + `ORDER BY id DESC LIMIT 1`)
	} else {
		row = s.db.QueryRow(query+`WHERE id = ?`, id)
	}

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	files, err := s.files(run.ID)
	if err != nil {
		return nil, err
	}
	run.Files = files
	return &run, nil
}

func (s *Store) files(runID int64) ([]types.FileRecord, error) {
	rows, err := s.db.Query(
		`SELECT name, status, width, height, duration_ms, error
		 FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %d: %w", runID, err)
	}
	defer rows.Close()

	var files []types.FileRecord
	for rows.Next() {
		var rec types.FileRecord
		var status string
		var durationMS int64
		if err := rows.Scan(&rec.Name, &status, &rec.Width, &rec.Height, &durationMS, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning file record: %w", err)
		}
		rec.Status = types.FileStatus(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		files = append(files, rec)
	}
	return files, rows.Err()
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (types.RunRecord, error) {
	var run types.RunRecord
	var started string
	if err := row.Scan(&run.ID, &started, &run.Stage, &run.Dir, &run.XSize, &run.YSize); err != nil {
		return types.RunRecord{}, err
	}
	ts, err := time.Parse(time.RFC3339, started)
	if err != nil {
		return types.RunRecord{}, fmt.Errorf("parsing run timestamp %q: %w", started, err)
	}
	run.StartedAt = ts
	return run, nil
}
