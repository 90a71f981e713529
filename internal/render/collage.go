package render

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/services"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

const DefaultCollageColumns = 5

// CollagePlacements returns the top-left corner of each of n square tiles, width/columns pixels wide.
//
// The cursor moves right one tile at a time and wraps to the next row once x reaches width.
// Nothing checks the canvas height, so with more than columns*columns tiles on a square canvas
// the extra rows fall below it.
func CollagePlacements(n, width, columns int) []image.Point {
	if columns < 1 {
		columns = DefaultCollageColumns
	}

	tile := width / columns
	points := make([]image.Point, 0, n)
	x, y := 0, 0
	for range n {
		points = append(points, image.Point{X: x, Y: y})
		x += tile
		if x >= width {
			x = 0
			y += tile
		}
	}
	return points
}

// CollageOptions configures [Collage]. Zero values select the defaults.
type CollageOptions struct {
	Columns int
	// OnTile, if set, is called after each tile is pasted with its index and the track count.
	OnTile func(i, total int, track models.Track)
}

// Collage fetches each track's artwork in playlist order and pastes it, squashed to a square tile,
// onto an opaque black width x height canvas. The first failed fetch aborts the collage.
func Collage(ctx context.Context, tracks []models.Track, width, height int, fetcher services.ImageFetcher, opts CollageOptions) (*image.NRGBA, error) {
	if opts.Columns < 1 {
		opts.Columns = DefaultCollageColumns
	}

	canvas := imaging.New(width, height, color.NRGBA{A: 0xff})
	tile := width / opts.Columns
	placements := CollagePlacements(len(tracks), width, opts.Columns)

	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		art, err := fetcher.Fetch(ctx, track.ArtworkURL)
		if err != nil {
			return nil, fmt.Errorf("artwork for %q: %w", track.Title, err)
		}

		resized := imaging.Resize(art, tile, tile, imaging.CatmullRom)
		pt := placements[i]
		draw.Draw(canvas, image.Rect(pt.X, pt.Y, pt.X+tile, pt.Y+tile), resized, image.Point{}, draw.Over)

		if opts.OnTile != nil {
			opts.OnTile(i, len(tracks), track)
		}
	}

	return canvas, nil
}
