package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"reposcope/pkg/treemap"
)

const (
	// vignetteCenterScale brightens the center stop relative to the base.
	vignetteCenterScale = 1.1
	// vignetteEdgeScale darkens the edge stop relative to the base.
	vignetteEdgeScale = 0.5
	// vignetteRadiusScale makes the gradient overshoot the tile so the
	// falloff stays soft out to the corners.
	vignetteRadiusScale = 1.4
	// vignetteMaxBias caps the parent-ward center displacement per axis,
	// as a fraction of the tile's own extent.
	vignetteMaxBias = 0.25
)

// Vignette computes the radial gradient for one tile. When parent is
// non-nil the gradient center is displaced from the tile's geometric center
// toward the parent's center, clamped so it never leaves the tile; sibling
// tiles appear to lean toward their shared parent.
func Vignette(r treemap.Rect, base colorful.Color, parent *treemap.Rect) RadialGradient {
	cx, cy := r.CenterX(), r.CenterY()
	if parent != nil {
		dx := clampAbs(parent.CenterX()-cx, vignetteMaxBias*r.W())
		dy := clampAbs(parent.CenterY()-cy, vignetteMaxBias*r.H())
		cx += dx
		cy += dy
	}
	return RadialGradient{
		CX:     cx,
		CY:     cy,
		Radius: vignetteRadiusScale * math.Max(r.W()/2, r.H()/2),
		Inner:  scaleColor(base, vignetteCenterScale),
		Outer:  scaleColor(base, vignetteEdgeScale),
	}
}

// scaleColor multiplies the RGB channels by f, clamped to [0, 1].
func scaleColor(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{
		R: math.Min(1, c.R*f),
		G: math.Min(1, c.G*f),
		B: math.Min(1, c.B*f),
	}
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
