package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"reposcope/pkg/model"
	"reposcope/pkg/treemap"
)

const (
	// labelPad is the left inset for label text inside a tile.
	labelPad = 4.0

	// minLeafLabelWidth / minLeafLabelHeight gate leaf name drawing; tiles
	// smaller than this stay unlabeled.
	minLeafLabelWidth  = 40.0
	minLeafLabelHeight = 14.0

	hoverAlpha  = 0.15
	borderWidth = 2.0

	ellipsis = "…"
)

// Options selects what one Render call draws on top of the layout.
// Hovered and Selected are original tree nodes; they are matched against
// the layout by path, so stale references from before a rebuild still
// resolve to the right tile.
type Options struct {
	ColorMode model.ColorMode
	SizeMode  model.SizeMode
	Hovered   *model.TreeNode
	Selected  *model.TreeNode

	// Now anchors the age color scale; the zero value means time.Now().
	Now time.Time
}

// Render draws the full layout in four strictly ordered passes: tile fills,
// labels, hover, selection. Every call is a complete redraw; rendering an
// empty layout draws nothing.
func Render(c Canvas, l *treemap.Layout, opts Options) {
	if l.Empty() {
		return
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	scales := BuildScales(l.Nodes, now)

	fillPass(c, l, opts, scales)
	labelPass(c, l, opts, scales)
	hoverPass(c, l, opts)
	selectionPass(c, l, opts)
}

// fillPass paints every drawable tile that shows as a surface: leaves, and
// directories whose label strip is visible. Subdivided directories without
// a strip are fully covered by their children and need no fill of their own.
func fillPass(c Canvas, l *treemap.Layout, opts Options, scales ScaleSet) {
	for _, n := range l.Nodes {
		if !n.Drawable() || !(n.IsLeaf || n.HasLabelStrip) {
			continue
		}
		base := BaseColor(n, opts.ColorMode, scales)
		var parent *treemap.Rect
		if n.Parent != nil {
			parent = &n.Parent.Rect
		}
		c.FillRadial(n.Rect, Vignette(n.Rect, base, parent))
	}
}

func labelPass(c Canvas, l *treemap.Layout, opts Options, scales ScaleSet) {
	for _, n := range l.Nodes {
		if !n.Drawable() {
			continue
		}
		base := BaseColor(n, opts.ColorMode, scales)
		text := TextColorFor(base)

		if !n.IsLeaf && n.HasLabelStrip {
			if n.Rect.W() < l.Config.LabelMinWidth {
				continue
			}
			label := fmt.Sprintf("%s/ (%s)", n.Data.Name, formatAggregate(n.Weight, opts.SizeMode))
			label = truncateToWidth(c, label, n.Rect.W()-2*labelPad)
			if label == "" {
				continue
			}
			c.DrawString(label, n.Rect.X0+labelPad, n.Rect.Y0+l.Config.LabelHeight/2, text)
			continue
		}

		if n.IsLeaf && n.Rect.W() >= minLeafLabelWidth && n.Rect.H() >= minLeafLabelHeight {
			label := truncateToWidth(c, n.Data.Name, n.Rect.W()-2*labelPad)
			if label == "" {
				continue
			}
			c.DrawString(label, n.Rect.X0+labelPad, n.Rect.CenterY(), text)
		}
	}
}

func hoverPass(c Canvas, l *treemap.Layout, opts Options) {
	if opts.Hovered == nil {
		return
	}
	n := l.FindPath(opts.Hovered.Path)
	if n == nil || !n.Drawable() {
		return
	}
	c.FillRect(n.Rect, hoverTint, hoverAlpha)
	c.StrokeRectInset(n.Rect, hoverBorder, borderWidth)
}

// selectionPass runs after hover so the selection border stays visible when
// hover and selection coincide on one tile.
func selectionPass(c Canvas, l *treemap.Layout, opts Options) {
	if opts.Selected == nil {
		return
	}
	n := l.FindPath(opts.Selected.Path)
	if n == nil || !n.Drawable() {
		return
	}
	c.StrokeRectInset(n.Rect, selectBorder, borderWidth)
}

// formatAggregate renders a subtree's aggregate weight for the label strip.
func formatAggregate(weight float64, mode model.SizeMode) string {
	switch mode {
	case model.SizeBytes:
		return humanize.Bytes(uint64(weight))
	case model.SizeFiles:
		return fmt.Sprintf("%s files", humanize.Comma(int64(weight)))
	case model.SizeComplexity:
		return fmt.Sprintf("cx %s", humanize.Comma(int64(weight)))
	default:
		return fmt.Sprintf("%s lines", humanize.Comma(int64(weight)))
	}
}

// truncateToWidth shortens s with a trailing ellipsis until it fits in max
// pixels on the given canvas. Returns "" when not even the ellipsis fits.
func truncateToWidth(c Canvas, s string, max float64) string {
	if max <= 0 {
		return ""
	}
	if c.MeasureString(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if c.MeasureString(candidate) <= max {
			return candidate
		}
	}
	return ""
}
