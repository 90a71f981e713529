package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sleeve/internal/shared"
	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"
)

// ArtworkOpts contains configuration for an [ArtworkService].
type ArtworkOpts struct {
	HTTPClient        *http.Client  // Defaults to a client with Timeout
	Timeout           time.Duration // Per-request timeout (default: 30s)
	UserAgent         string        // Sent on every request
	RequestsPerSecond float64       // Download pacing; <= 0 disables limiting
	Cache             ArtworkCache  // Optional byte cache
	Logger            *log.Logger
}

// ArtworkService downloads album art one image at a time and decodes it.
type ArtworkService struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	cache      ArtworkCache
	logger     *log.Logger
}

// NewArtworkService creates an [ArtworkService] from opts, filling in defaults.
func NewArtworkService(opts ArtworkOpts) *ArtworkService {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &ArtworkService{
		httpClient: opts.HTTPClient,
		userAgent:  opts.UserAgent,
		limiter:    rate.NewLimiter(limit, 1),
		cache:      opts.Cache,
		logger:     opts.Logger,
	}
}

// Download returns the raw bytes and content type stored at url, consulting the cache first.
func (s *ArtworkService) Download(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", fmt.Errorf("%w: empty URL provided", shared.ErrImageFetch)
	}

	if s.cache != nil {
		data, err := s.cache.Get(url)
		switch {
		case err == nil:
			s.logger.Debug("artwork cache hit", "url", url)
			return data, "", nil
		case !errors.Is(err, shared.ErrCacheMiss):
			s.logger.Warn("artwork cache read failed", "url", url, "error", err)
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrImageFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrImageFetch, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: %s returned status %d", shared.ErrImageFetch, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to read image data: %v", shared.ErrImageFetch, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if s.cache != nil {
		if err := s.cache.Put(url, data, contentType); err != nil {
			s.logger.Warn("artwork cache write failed", "url", url, "error", err)
		}
	}

	return data, contentType, nil
}

// Fetch downloads and decodes the image at url. JPEG, PNG, GIF and WebP are supported.
func (s *ArtworkService) Fetch(ctx context.Context, url string) (image.Image, error) {
	data, _, err := s.Download(ctx, url)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrImageDecode, url, err)
	}

	s.logger.Debug("artwork decoded", "url", url, "format", format, "size", img.Bounds().Size())
	return img, nil
}
