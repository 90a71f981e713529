package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/sleeve/internal/shared"
)

// ArtworkRepository caches artwork bytes in the artwork table.
type ArtworkRepository struct {
	db *sql.DB
}

// ArtworkStats summarizes the artwork table.
type ArtworkStats struct {
	Count       int
	TotalBytes  int64
	LastFetched time.Time
}

// NewArtworkRepository creates a new ArtworkRepository with the given database connection
func NewArtworkRepository(db *sql.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// Get returns cached bytes for url or [shared.ErrCacheMiss].
func (r *ArtworkRepository) Get(url string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(`SELECT data FROM artwork WHERE url = ?`, url).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artwork: %w", err)
	}
	return data, nil
}

// Put inserts or replaces the cached bytes for url.
func (r *ArtworkRepository) Put(url string, data []byte, contentType string) error {
	query := `
		INSERT INTO artwork (url, data, content_type, size, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			data = excluded.data,
			content_type = excluded.content_type,
			size = excluded.size,
			fetched_at = excluded.fetched_at
	`

	if _, err := r.db.Exec(query, url, data, contentType, len(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store artwork: %w", err)
	}
	return nil
}

// Stats returns the number of cached images, their total size and the newest fetch time.
func (r *ArtworkRepository) Stats() (*ArtworkStats, error) {
	var stats ArtworkStats
	if err := r.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM artwork`).Scan(&stats.Count, &stats.TotalBytes); err != nil {
		return nil, fmt.Errorf("failed to read artwork stats: %w", err)
	}

	err := r.db.QueryRow(`SELECT fetched_at FROM artwork ORDER BY fetched_at DESC LIMIT 1`).Scan(&stats.LastFetched)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read artwork stats: %w", err)
	}

	return &stats, nil
}

// Clear deletes every cached image and returns how many were removed.
func (r *ArtworkRepository) Clear() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM artwork`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear artwork: %w", err)
	}
	return res.RowsAffected()
}
