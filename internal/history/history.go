// Package history provides the persistence layer for past sync runs.
//
// Runs are recorded after the fact, purely for inspection via the history
// command. Nothing in the transfer engine reads them back: resume safety
// comes from the on-device size check, not from this table.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/diskjockey/internal/shared"
)

// Run is one recorded sync invocation.
type Run struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	Folder       string    `json:"folder"`
	FilesCopied  int       `json:"files_copied"`
	FilesSkipped int       `json:"files_skipped"`
	BytesCopied  int64     `json:"bytes_copied"`
	Duration     int64     `json:"duration_ms"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// RunRepository handles CRUD operations for the runs table.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a RunRepository backed by the given database.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create records a completed run. The ID is generated when empty.
func (r *RunRepository) Create(run *Run) error {
	if run.ID == "" {
		run.ID = shared.GenerateID()
	}

	query := `
		INSERT INTO runs (id, action, folder, files_copied, files_skipped, bytes_copied, duration_ms, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		run.ID, run.Action, run.Folder,
		run.FilesCopied, run.FilesSkipped, run.BytesCopied,
		run.Duration, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// List returns the most recent runs, newest first, capped at limit.
func (r *RunRepository) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, action, folder, files_copied, files_skipped, bytes_copied, duration_ms, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID, &run.Action, &run.Folder,
			&run.FilesCopied, &run.FilesSkipped, &run.BytesCopied,
			&run.Duration, &run.StartedAt, &run.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}
