package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultTitleSize = 36
	DefaultTrackSize = 20
)

// Font is a face together with the nominal size it was opened at.
// The size doubles as the line height, the way the layout measures text.
type Font struct {
	Face font.Face
	Size float64
}

// LineHeight returns the nominal size in whole pixels.
func (f Font) LineHeight() int {
	return int(f.Size)
}

// FontOptions selects sizes and optional TrueType/OpenType files.
type FontOptions struct {
	TitleSize  float64
	TrackSize  float64
	TitlePath  string
	TrackPath  string
	ArtistPath string
}

// Faces holds every face a sleeve needs.
type Faces struct {
	Title  Font // playlist title on the cover
	Track  Font // tracklist title lines
	Artist Font // tracklist artist lines, emphasized
}

// LoadFaces opens the configured fonts, falling back to Go Bold, Go Regular and Go Italic.
func LoadFaces(opts FontOptions) (*Faces, error) {
	if opts.TitleSize <= 0 {
		opts.TitleSize = DefaultTitleSize
	}
	if opts.TrackSize <= 0 {
		opts.TrackSize = DefaultTrackSize
	}

	title, err := LoadFont(opts.TitlePath, gobold.TTF, opts.TitleSize)
	if err != nil {
		return nil, fmt.Errorf("title font: %w", err)
	}
	track, err := LoadFont(opts.TrackPath, goregular.TTF, opts.TrackSize)
	if err != nil {
		return nil, fmt.Errorf("track font: %w", err)
	}
	artist, err := LoadFont(opts.ArtistPath, goitalic.TTF, opts.TrackSize)
	if err != nil {
		return nil, fmt.Errorf("artist font: %w", err)
	}

	return &Faces{Title: title, Track: track, Artist: artist}, nil
}

// Close releases the underlying faces.
func (f *Faces) Close() error {
	for _, face := range []font.Face{f.Title.Face, f.Track.Face, f.Artist.Face} {
		if face != nil {
			face.Close()
		}
	}
	return nil
}

// LoadFont parses the font file at path, or fallback when path is empty, at size pixels (72 DPI).
func LoadFont(path string, fallback []byte, size float64) (Font, error) {
	data := fallback
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Font{}, fmt.Errorf("failed to read font file: %w", err)
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return Font{}, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Font{}, fmt.Errorf("failed to create face: %w", err)
	}

	return Font{Face: face, Size: size}, nil
}

// drawText draws s with its line top at (x, y); the baseline sits one ascent lower.
func drawText(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}
