package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo/float"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"reposcope/pkg/treemap"
)

// svgCharWidth approximates glyph advance as a fraction of the font size;
// SVG has no font metrics at generation time.
const svgCharWidth = 0.6

// SVGCanvas is the vector Canvas backend. Gradients become per-tile
// radialGradient defs referenced by fill URL.
type SVGCanvas struct {
	canvas   *svg.SVG
	fontSize float64
	gradSeq  int
}

// NewSVGCanvas starts an SVG document of the given size on w. Call Close
// to finish the document.
func NewSVGCanvas(w io.Writer, width, height float64) *SVGCanvas {
	c := svg.New(w)
	c.Start(width, height)
	return &SVGCanvas{canvas: c, fontSize: DefaultFontSize}
}

// Close ends the SVG document.
func (c *SVGCanvas) Close() {
	c.canvas.End()
}

// FillRadial implements Canvas.
func (c *SVGCanvas) FillRadial(r treemap.Rect, g RadialGradient) {
	c.gradSeq++
	id := fmt.Sprintf("vg%d", c.gradSeq)

	// Gradient geometry is expressed relative to the tile's bounding box.
	cx := boundingPercent(g.CX-r.X0, r.W())
	cy := boundingPercent(g.CY-r.Y0, r.H())
	radius := boundingPercent(g.Radius, math.Max(r.W(), r.H()))

	c.canvas.Def()
	c.canvas.RadialGradient(id, cx, cy, radius, cx, cy, []svg.Offcolor{
		{Offset: 0, Color: g.Inner.Hex(), Opacity: 1},
		{Offset: 100, Color: g.Outer.Hex(), Opacity: 1},
	})
	c.canvas.DefEnd()
	c.canvas.Rect(r.X0, r.Y0, r.W(), r.H(), fmt.Sprintf("fill:url(#%s)", id))
}

// FillRect implements Canvas.
func (c *SVGCanvas) FillRect(r treemap.Rect, col colorful.Color, alpha float64) {
	c.canvas.Rect(r.X0, r.Y0, r.W(), r.H(),
		fmt.Sprintf("fill:%s;fill-opacity:%.3f", col.Hex(), alpha))
}

// StrokeRectInset implements Canvas.
func (c *SVGCanvas) StrokeRectInset(r treemap.Rect, col colorful.Color, width float64) {
	half := width / 2
	c.canvas.Rect(r.X0+half, r.Y0+half, r.W()-width, r.H()-width,
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", col.Hex(), width))
}

// MeasureString implements Canvas with an advance-width approximation.
func (c *SVGCanvas) MeasureString(s string) float64 {
	return float64(runewidth.StringWidth(s)) * c.fontSize * svgCharWidth
}

// DrawString implements Canvas.
func (c *SVGCanvas) DrawString(s string, x, y float64, col colorful.Color) {
	c.canvas.Text(x, y, s,
		fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:%.0fpx;dominant-baseline:central", col.Hex(), c.fontSize))
}

// boundingPercent converts an absolute length to a whole percentage of the
// reference extent, clamped to the uint8 range svgo gradients accept.
func boundingPercent(v, extent float64) uint8 {
	if extent <= 0 {
		return 0
	}
	p := math.Round(v / extent * 100)
	if p < 0 {
		return 0
	}
	if p > 255 {
		return 255
	}
	return uint8(p)
}
