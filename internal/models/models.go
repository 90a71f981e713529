// package models defines the data model for sleeve art generation
package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/desertthunder/sleeve/internal/shared"
)

// Playlist represents playlist metadata from the streaming service
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TrackCount  int    `json:"track_count"`
}

// PlaylistExport represents a playlist with all its tracks, in playlist order
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Tracks   []Track  `json:"tracks"`
}

// Track is a single tracklist entry. Artist is the primary (first credited) artist.
type Track struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artwork_url"`
}

// RGB is a color whose channels are known to lie in [0,255].
type RGB struct {
	R, G, B uint8
}

// NewRGB validates three integer channels and returns the color.
func NewRGB(r, g, b int) (RGB, error) {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.value < 0 || ch.value > 255 {
			return RGB{}, fmt.Errorf("%w: %s component %d must be in the range 0-255", shared.ErrInvalidColor, ch.name, ch.value)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// ParseRGB parses "r,g,b" or "r g b" into a color.
func ParseRGB(s string) (RGB, error) {
	fields := SplitComponents(s)
	if len(fields) != 3 {
		return RGB{}, fmt.Errorf("%w: expected three components, got %q", shared.ErrInvalidColor, s)
	}

	var vals [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q is not an integer", shared.ErrInvalidColor, f)
		}
		vals[i] = v
	}

	return NewRGB(vals[0], vals[1], vals[2])
}

// SplitComponents splits on commas and whitespace, dropping empty fields.
func SplitComponents(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// Color returns the opaque [color.RGBA] for c.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}
