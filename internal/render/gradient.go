package render

import (
	"image"
	"image/color"

	"github.com/desertthunder/sleeve/internal/models"
	"golang.org/x/image/draw"
)

// DefaultGridSize is the number of blocks per side of the cover gradient.
const DefaultGridSize = 5

// Gradient returns a width x height image made of a 5x5 grid of solid blocks blending c1 (top-left) to c2 (bottom-right).
func Gradient(c1, c2 models.RGB, width, height int) *image.RGBA {
	return GradientGrid(c1, c2, width, height, DefaultGridSize)
}

// GradientGrid is [Gradient] with a configurable number of blocks per side.
//
// Blocks are width/grid by height/grid pixels (integer division). When a dimension is not a
// multiple of grid, the leftover pixels along the right and bottom edges belong to no block
// and stay opaque black.
func GradientGrid(c1, c2 models.RGB, width, height, grid int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{A: 0xff}), image.Point{}, draw.Src)

	if grid < 2 {
		grid = DefaultGridSize
	}

	bw, bh := width/grid, height/grid
	for y := 0; y < grid; y++ {
		for x := 0; x < grid; x++ {
			block := image.Rect(x*bw, y*bh, (x+1)*bw, (y+1)*bh)
			fill := image.NewUniform(BlockColor(c1, c2, x, y, grid).Color())
			draw.Draw(img, block, fill, image.Point{}, draw.Src)
		}
	}

	return img
}

// BlockColor returns the color of block (x, y): the linear blend of c1 and c2 at the mean of the
// horizontal and vertical ratios x/(grid-1) and y/(grid-1), truncated per channel.
func BlockColor(c1, c2 models.RGB, x, y, grid int) models.RGB {
	last := float64(grid - 1)
	ratio := (float64(x)/last + float64(y)/last) / 2

	return models.RGB{
		R: blend(c1.R, c2.R, ratio),
		G: blend(c1.G, c2.G, ratio),
		B: blend(c1.B, c2.B, ratio),
	}
}

func blend(a, b uint8, ratio float64) uint8 {
	v := int(float64(a)*(1-ratio) + float64(b)*ratio)
	return uint8(max(0, min(255, v)))
}
