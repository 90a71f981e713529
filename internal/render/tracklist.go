package render

import (
	"image"
	"image/color"

	"github.com/desertthunder/sleeve/internal/models"
	"golang.org/x/image/draw"
)

const (
	DefaultColumns  = 2
	tracklistMargin = 10
	artistPrefix    = "   - "
)

// LineStyle selects the face a [TextLine] is drawn with.
type LineStyle int

const (
	TitleLine LineStyle = iota
	ArtistLine
)

func (s LineStyle) String() string {
	switch s {
	case TitleLine:
		return "title"
	case ArtistLine:
		return "artist"
	default:
		return "unknown"
	}
}

// TextLine is a positioned line of the tracklist. (X, Y) is the top-left of the line.
type TextLine struct {
	Text  string
	X, Y  int
	Style LineStyle
}

// LayoutTracklist positions every track as a title line and an artist line.
//
// Tracks fill columns left to right. Column 0 starts at x=10, column c at c*width/columns.
// Rows share one cursor that starts at y=10 and advances by three line heights after the last
// column of each row. Lines past the bottom of the canvas are still emitted.
func LayoutTracklist(tracks []models.Track, width, lineHeight, columns int) []TextLine {
	if columns < 1 {
		columns = DefaultColumns
	}

	lines := make([]TextLine, 0, len(tracks)*2)
	y := tracklistMargin
	for i, track := range tracks {
		col := i % columns
		x := col * width / columns
		if col == 0 {
			x = tracklistMargin
		}

		lines = append(lines,
			TextLine{Text: track.Title, X: x, Y: y, Style: TitleLine},
			TextLine{Text: artistPrefix + track.Artist, X: x, Y: y + lineHeight, Style: ArtistLine},
		)

		if col == columns-1 {
			y += lineHeight * 3
		}
	}
	return lines
}

// TracklistOptions configures [Tracklist]. Zero values select the defaults.
type TracklistOptions struct {
	Columns int
}

// Tracklist draws the tracklist in black on a white width x height canvas.
// Title lines use faces.Track and artist lines faces.Artist; the line height is faces.Track's size.
func Tracklist(tracks []models.Track, width, height int, faces *Faces, opts TracklistOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, line := range LayoutTracklist(tracks, width, faces.Track.LineHeight(), opts.Columns) {
		face := faces.Track.Face
		if line.Style == ArtistLine {
			face = faces.Artist.Face
		}
		drawText(img, face, line.Text, line.X, line.Y, color.Black)
	}

	return img
}
