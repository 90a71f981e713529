package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Sleeve stacks front, tracklist and back vertically, left-aligned, on an opaque black canvas
// as wide as the widest panel and as tall as all three.
func Sleeve(front, tracklist, back image.Image) *image.NRGBA {
	return Stack(front, tracklist, back)
}

// Stack pastes panels top to bottom at x=0.
func Stack(panels ...image.Image) *image.NRGBA {
	width, height := 0, 0
	for _, p := range panels {
		b := p.Bounds()
		width = max(width, b.Dx())
		height += b.Dy()
	}

	canvas := imaging.New(width, height, color.NRGBA{A: 0xff})
	y := 0
	for _, p := range panels {
		canvas = imaging.Paste(canvas, p, image.Pt(0, y))
		y += p.Bounds().Dy()
	}
	return canvas
}

// Rotate180 returns img turned upside down.
func Rotate180(img image.Image) *image.NRGBA {
	return imaging.Rotate180(img)
}

// Save encodes img to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	return imaging.Save(img, path)
}
