package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

const (
	DefaultOutlineRadius = 2
	DefaultBottomMargin  = 20
)

// TitleOptions controls the title outline and its distance from the bottom edge.
// Zero values select the defaults.
type TitleOptions struct {
	OutlineRadius int
	BottomMargin  int
}

func (o TitleOptions) withDefaults() TitleOptions {
	if o.OutlineRadius <= 0 {
		o.OutlineRadius = DefaultOutlineRadius
	}
	if o.BottomMargin <= 0 {
		o.BottomMargin = DefaultBottomMargin
	}
	return o
}

// TitlePosition returns the top-left corner of a title line advance pixels wide and size pixels tall,
// centered horizontally and margin pixels above the bottom of bounds.
//
// x is floored, so titles wider than the canvas yield a negative x.
func TitlePosition(bounds image.Rectangle, advance float64, size, margin int) image.Point {
	x := int(math.Floor((float64(bounds.Dx()) - advance) / 2))
	y := bounds.Dy() - size - margin
	return image.Point{X: bounds.Min.X + x, Y: bounds.Min.Y + y}
}

// OverlayTitle draws title onto img in white with a black outline and returns img.
//
// The outline is the text stamped in black at every offset within OutlineRadius (a filled square),
// after which the white text is drawn once at the centered position.
func OverlayTitle(img draw.Image, title string, f Font, opts TitleOptions) draw.Image {
	opts = opts.withDefaults()

	advance := font.MeasureString(f.Face, title)
	pos := TitlePosition(img.Bounds(), float64(advance)/64, f.LineHeight(), opts.BottomMargin)

	r := opts.OutlineRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			drawText(img, f.Face, title, pos.X+dx, pos.Y+dy, color.Black)
		}
	}
	drawText(img, f.Face, title, pos.X, pos.Y, color.White)

	return img
}
