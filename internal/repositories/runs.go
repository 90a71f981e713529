package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// SleeveRun records one generated sleeve.
type SleeveRun struct {
	ID         string
	PlaylistID string
	Title      string
	TrackCount int
	OutputDir  string
	CreatedAt  time.Time
}

// RunRepository persists [SleeveRun] rows.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts run, stamping CreatedAt when it is zero.
func (r *RunRepository) Create(run *SleeveRun) error {
	if run.ID == "" || run.PlaylistID == "" {
		return fmt.Errorf("run id and playlist id are required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sleeve_runs (id, playlist_id, title, track_count, output_dir, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, run.ID, run.PlaylistID, run.Title, run.TrackCount, run.OutputDir, run.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (r *RunRepository) Recent(limit int) ([]SleeveRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(`
		SELECT id, playlist_id, title, track_count, output_dir, created_at
		FROM sleeve_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []SleeveRun
	for rows.Next() {
		var run SleeveRun
		if err := rows.Scan(&run.ID, &run.PlaylistID, &run.Title, &run.TrackCount, &run.OutputDir, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
