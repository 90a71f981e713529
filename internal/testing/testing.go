// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/sleeve/internal/models"
)

// MockPlaylistClient is a test double for [services.PlaylistClient]
type MockPlaylistClient struct {
	Title     string
	Tracks    []models.Track
	TitleErr  error
	TracksErr error

	mu    sync.Mutex
	Calls []string
}

func (m *MockPlaylistClient) GetTitle(ctx context.Context, ref string) (string, error) {
	m.record("GetTitle:" + ref)
	if m.TitleErr != nil {
		return "", m.TitleErr
	}
	return m.Title, nil
}

func (m *MockPlaylistClient) GetTracks(ctx context.Context, ref string) ([]models.Track, error) {
	m.record("GetTracks:" + ref)
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return m.Tracks, nil
}

func (m *MockPlaylistClient) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// MockFetcher is a test double for [services.ImageFetcher] returning solid Size x Size images.
//
// Colors maps a URL to its fill; unknown URLs get gray. FailOn makes the fetch of that URL return Err.
type MockFetcher struct {
	Colors map[string]color.Color
	Size   int
	FailOn string
	Err    error

	mu   sync.Mutex
	URLs []string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	m.mu.Lock()
	m.URLs = append(m.URLs, url)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.FailOn != "" && url == m.FailOn {
		if m.Err != nil {
			return nil, m.Err
		}
		return nil, errors.New("fetch failed")
	}

	size := m.Size
	if size <= 0 {
		size = 64
	}

	var fill color.Color = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	if c, ok := m.Colors[url]; ok {
		fill = c
	}
	return SolidImage(size, size, fill), nil
}

// Fetched returns a copy of the requested URLs in order.
func (m *MockFetcher) Fetched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.URLs...)
}

// SolidImage returns a w x h image filled with c.
func SolidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// SameRGBA reports whether c has exactly the given 8-bit channels.
func SameRGBA(c color.Color, want color.RGBA) bool {
	return color.RGBAModel.Convert(c).(color.RGBA) == want
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
