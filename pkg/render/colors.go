package render

import (
	"sort"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"

	"reposcope/pkg/model"
	"reposcope/pkg/treemap"
)

// Color roles shared by every color mode.
var (
	// directoryBase fills every directory tile regardless of color mode.
	directoryBase = mustHex("#3A3F58")
	// neutralBase is the fallback for unknown languages and modes.
	neutralBase = mustHex("#6B7280")

	textDark  = mustHex("#1A1B26")
	textLight = mustHex("#F3F4F6")

	hoverTint    = mustHex("#FFFFFF")
	hoverBorder  = mustHex("#E5E7EB")
	selectBorder = mustHex("#F59E0B")
)

// languageColors is the fixed language-to-color table. Unlisted languages
// fall back to neutralBase.
var languageColors = map[string]colorful.Color{
	"Go":         mustHex("#00ADD8"),
	"TypeScript": mustHex("#3178C6"),
	"JavaScript": mustHex("#F1E05A"),
	"Python":     mustHex("#3572A5"),
	"Rust":       mustHex("#DEA584"),
	"C":          mustHex("#555555"),
	"C++":        mustHex("#F34B7D"),
	"Java":       mustHex("#B07219"),
	"Ruby":       mustHex("#701516"),
	"Swift":      mustHex("#F05138"),
	"Kotlin":     mustHex("#A97BFF"),
	"Shell":      mustHex("#89E051"),
	"HTML":       mustHex("#E34C26"),
	"CSS":        mustHex("#563D7C"),
	"Markdown":   mustHex("#083FA1"),
	"YAML":       mustHex("#CB171E"),
	"JSON":       mustHex("#292929"),
	"SQL":        mustHex("#E38C00"),
}

// Heat scale endpoints, interpolated in Lab space.
var (
	heatCold = mustHex("#2E5A41")
	heatWarm = mustHex("#C9B458")
	heatHot  = mustHex("#B03A3A")
)

// ageBuckets maps days-since-modified to a heat position; edits within a
// week are hottest, anything older than a year is fully cold.
var ageBuckets = []struct {
	days float64
	heat float64
}{
	{7, 1.0},
	{30, 0.75},
	{90, 0.5},
	{365, 0.25},
}

// ScaleSet holds the per-layout calibration for color scales. Building it
// once per render keeps BaseColor O(1) per tile.
type ScaleSet struct {
	Now time.Time

	// ComplexityMax is the heat scale's upper bound: the 95th percentile of
	// leaf complexity, so one pathological file does not flatten the scale.
	ComplexityMax float64
}

// BuildScales calibrates the color scales over the layout's leaf tiles.
func BuildScales(nodes []*treemap.Node, now time.Time) ScaleSet {
	s := ScaleSet{Now: now, ComplexityMax: 1}

	var cs []float64
	for _, n := range nodes {
		if n.IsLeaf && n.Data.Kind == model.KindFile {
			cs = append(cs, float64(n.Data.Metrics.Complexity))
		}
	}
	if len(cs) > 0 {
		sort.Float64s(cs)
		if q := stat.Quantile(0.95, stat.Empirical, cs, nil); q > 1 {
			s.ComplexityMax = q
		}
	}
	return s
}

// BaseColor computes a tile's fill color for the active color mode.
// Directories always use the fixed neutral directory color, never a
// language color.
func BaseColor(n *treemap.Node, mode model.ColorMode, s ScaleSet) colorful.Color {
	if n.Data.Kind != model.KindFile {
		return directoryBase
	}
	switch mode {
	case model.ColorByLanguage:
		if c, ok := languageColors[n.Data.Language]; ok {
			return c
		}
		return neutralBase
	case model.ColorByAge:
		return heatColor(ageHeat(n.Data.LastModified, s.Now))
	case model.ColorByComplexity:
		t := float64(n.Data.Metrics.Complexity) / s.ComplexityMax
		return heatColor(clamp01(t))
	case model.ColorByDensity:
		return heatColor(densityHeat(n.Data.Metrics))
	}
	return neutralBase
}

// TextColorFor picks a legible label color for the given fill: relative
// luminance above 0.5 gets dark text, everything else light text.
func TextColorFor(base colorful.Color) colorful.Color {
	if relativeLuminance(base) > 0.5 {
		return textDark
	}
	return textLight
}

// relativeLuminance is the WCAG luminance over linearized sRGB channels.
func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// heatColor maps t in [0,1] onto the cold -> warm -> hot ramp.
func heatColor(t float64) colorful.Color {
	t = clamp01(t)
	if t < 0.5 {
		return heatCold.BlendLab(heatWarm, t*2).Clamped()
	}
	return heatWarm.BlendLab(heatHot, (t-0.5)*2).Clamped()
}

// ageHeat buckets days-since-modified; unknown timestamps read as cold.
func ageHeat(modified, now time.Time) float64 {
	if modified.IsZero() {
		return 0
	}
	days := now.Sub(modified).Hours() / 24
	for _, b := range ageBuckets {
		if days <= b.days {
			return b.heat
		}
	}
	return 0
}

// densityHeat positions a file on the heat ramp by its share of actual code
// lines among all lines; comment- and blank-heavy files read cold.
func densityHeat(m model.Metrics) float64 {
	if m.Lines <= 0 {
		return 0
	}
	return clamp01(float64(m.CodeLines()) / float64(m.Lines))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
