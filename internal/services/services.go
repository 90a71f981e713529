// package services defines the collaborators the sleeve pipeline talks to over HTTP
//
// Spotify (playlist metadata and tracks), album-art hosts (artwork images)
package services

import (
	"context"
	"image"

	"github.com/desertthunder/sleeve/internal/models"
)

// PlaylistClient is the read side of a streaming service used to build a sleeve.
type PlaylistClient interface {
	// GetTitle returns the playlist name for a playlist URL, URI or ID.
	GetTitle(ctx context.Context, ref string) (string, error)

	// GetTracks returns every track of the playlist in order, paging transparently.
	GetTracks(ctx context.Context, ref string) ([]models.Track, error)
}

// Service is a [PlaylistClient] that also manages its own authentication.
type Service interface {
	PlaylistClient

	// Authenticate obtains an access token. Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// ExportPlaylist returns the playlist metadata with all its tracks.
	ExportPlaylist(ctx context.Context, ref string) (*models.PlaylistExport, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// ImageFetcher downloads and decodes a raster image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// ArtworkCache stores downloaded artwork bytes keyed by URL.
//
// Get returns [shared.ErrCacheMiss] when the URL has not been stored.
type ArtworkCache interface {
	Get(url string) ([]byte, error)
	Put(url string, data []byte, contentType string) error
}
