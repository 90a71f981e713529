// Package render implements the raster stages of a CD sleeve.
//
// Every stage is a pure function of its inputs except [OverlayTitle], which draws onto the image it is given:
//
//  1. [Gradient] : a 5x5 grid of solid blocks blending two colors from top-left to bottom-right
//  2. [OverlayTitle] : the playlist title, outlined in black, centered near the bottom edge
//  3. [Tracklist] : two columns of title / "- artist" pairs on white ([LayoutTracklist] computes positions only)
//  4. [Collage] : album art resized to square tiles, five per row ([CollagePlacements] computes positions only)
//  5. [Sleeve] : the three panels stacked vertically
//
// Layout is deliberately naive. Long titles run off the canvas, long tracklists run past the bottom
// edge and more than 25 tiles are placed below the collage canvas, where they are clipped.
// None of these cases is an error.
//
// Text is drawn with [font.Drawer] using the bundled Go fonts unless TrueType files are configured,
// see [LoadFaces].
package render
