package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"reposcope/pkg/model"
	"reposcope/pkg/render"
	"reposcope/pkg/treemap"
)

// Cell-space layout constants: one character row is the label strip, and a
// directory needs a handful of columns before it earns one.
const (
	CellLabelHeight   = 1
	CellLabelMinWidth = 12
	minLeafLabelCols  = 5
)

// PanelConfig converts a pixel-space config to cell space: the panel builds
// its layout with terminal cells as the device pixels, so label bands are
// one row tall.
func PanelConfig(cfg model.Config) model.Config {
	cfg.LabelHeight = CellLabelHeight
	cfg.LabelMinWidth = CellLabelMinWidth
	return cfg
}

// cell is one character of the rendered map.
type cell struct {
	ch rune
	fg lipgloss.Color
	bg lipgloss.Color
}

// RenderPanel draws the layout into a width x height character grid. The
// same four-pass order as the raster pipeline applies: fills, labels,
// hover, selection; cells are the device pixels here, so vignette shading
// degrades to flat fills.
func RenderPanel(l *treemap.Layout, width, height int, colorMode model.ColorMode, hoveredPath, selectedPath string, now time.Time) string {
	if width < 1 || height < 1 {
		return ""
	}
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' ', bg: ColorBgDark}
		}
	}
	if !l.Empty() {
		scales := render.BuildScales(l.Nodes, now)

		for _, n := range l.Nodes {
			if !n.Drawable() || !(n.IsLeaf || n.HasLabelStrip) {
				continue
			}
			base := render.BaseColor(n, colorMode, scales)
			fillCells(grid, n.Rect, base)
		}
		for _, n := range l.Nodes {
			drawCellLabel(grid, l, n, colorMode, scales)
		}
		if hov := l.FindPath(hoveredPath); hov != nil && hov.Drawable() && hoveredPath != "" {
			lightenCells(grid, hov.Rect)
		}
		if sel := l.FindPath(selectedPath); sel != nil && sel.Drawable() && selectedPath != "" {
			outlineCells(grid, sel.Rect)
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			c := grid[y][x]
			style := lipgloss.NewStyle().Background(c.bg)
			if c.fg != "" {
				style = style.Foreground(c.fg)
			}
			b.WriteString(style.Render(string(c.ch)))
		}
	}
	return b.String()
}

func cellBounds(r treemap.Rect, grid [][]cell) (x0, y0, x1, y1 int) {
	x0, y0 = int(r.X0), int(r.Y0)
	x1, y1 = int(r.X1), int(r.Y1)
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > len(grid) {
		y1 = len(grid)
	}
	if len(grid) > 0 && x1 > len(grid[0]) {
		x1 = len(grid[0])
	}
	return
}

func fillCells(grid [][]cell, r treemap.Rect, base colorful.Color) {
	bg := lipgloss.Color(base.Clamped().Hex())
	x0, y0, x1, y1 := cellBounds(r, grid)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			grid[y][x] = cell{ch: ' ', bg: bg}
		}
	}
}

func drawCellLabel(grid [][]cell, l *treemap.Layout, n *treemap.Node, colorMode model.ColorMode, scales render.ScaleSet) {
	if !n.Drawable() {
		return
	}
	x0, y0, x1, y1 := cellBounds(n.Rect, grid)
	w := x1 - x0
	if w < 1 || y1 <= y0 {
		return
	}

	base := render.BaseColor(n, colorMode, scales)
	fg := lipgloss.Color(render.TextColorFor(base).Hex())
	bg := lipgloss.Color(base.Clamped().Hex())

	var label string
	var row int
	switch {
	case !n.IsLeaf && n.HasLabelStrip:
		label = n.Data.Name + "/"
		row = y0
	case n.IsLeaf && w >= minLeafLabelCols && y1-y0 >= 1:
		label = n.Data.Name
		row = (y0 + y1 - 1) / 2
	default:
		return
	}
	label = runewidth.Truncate(label, w, "…")
	x := x0
	for _, ch := range label {
		cw := runewidth.RuneWidth(ch)
		if x+cw > x1 || row >= len(grid) {
			break
		}
		grid[row][x] = cell{ch: ch, fg: fg, bg: bg}
		x += cw
	}
}

// lightenCells is the cell-space hover overlay: the tile's colors blend
// toward white.
func lightenCells(grid [][]cell, r treemap.Rect) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	x0, y0, x1, y1 := cellBounds(r, grid)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := grid[y][x]
			if bg, err := colorful.Hex(string(c.bg)); err == nil {
				c.bg = lipgloss.Color(bg.BlendRgb(white, 0.25).Clamped().Hex())
			}
			grid[y][x] = c
		}
	}
}

// outlineCells is the cell-space selection border.
func outlineCells(grid [][]cell, r treemap.Rect) {
	x0, y0, x1, y1 := cellBounds(r, grid)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	set := func(x, y int, ch rune) {
		c := grid[y][x]
		c.ch = ch
		c.fg = ColorAccent
		grid[y][x] = c
	}
	for x := x0; x < x1; x++ {
		set(x, y0, '─')
		set(x, y1-1, '─')
	}
	for y := y0; y < y1; y++ {
		set(x0, y, '│')
		set(x1-1, y, '│')
	}
	set(x0, y0, '┌')
	set(x1-1, y0, '┐')
	set(x0, y1-1, '└')
	set(x1-1, y1-1, '┘')
}
