// Package render draws a treemap layout onto a 2D canvas in four ordered
// passes: tile fills, labels, hover, selection. The Canvas abstraction keeps
// the pipeline independent of the raster (gg) and vector (svg) backends.
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"reposcope/pkg/treemap"
)

// RadialGradient describes a vignette fill: Inner at the center point,
// falling off to Outer at Radius.
type RadialGradient struct {
	CX, CY float64
	Radius float64
	Inner  colorful.Color
	Outer  colorful.Color
}

// Canvas is the immediate-mode drawing surface the pipeline renders to.
// Implementations need rectangle fill/stroke, text measurement/drawing and
// radial gradient fills; nothing else.
type Canvas interface {
	// FillRadial fills r with the gradient, clipped to r.
	FillRadial(r treemap.Rect, g RadialGradient)

	// FillRect fills r with a flat color at the given opacity (0..1).
	FillRect(r treemap.Rect, c colorful.Color, alpha float64)

	// StrokeRectInset strokes a border of the given width just inside r.
	StrokeRectInset(r treemap.Rect, c colorful.Color, width float64)

	// MeasureString returns the rendered width of s in pixels.
	MeasureString(s string) float64

	// DrawString draws s left-aligned at x, vertically centered on y.
	DrawString(s string, x, y float64, c colorful.Color)
}
