package render

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"reposcope/pkg/model"
	"reposcope/pkg/treemap"
)

func leafNode(lang string, m model.Metrics) *treemap.Node {
	return &treemap.Node{
		IsLeaf: true,
		Data:   &model.TreeNode{Name: "f", Path: "f", Kind: model.KindFile, Metrics: m, Language: lang},
	}
}

func TestBaseColor_DirectoryAlwaysNeutral(t *testing.T) {
	n := &treemap.Node{Data: &model.TreeNode{Name: "src", Path: "src", Kind: model.KindDir, Language: "Go"}}
	s := ScaleSet{Now: time.Now(), ComplexityMax: 10}
	for _, mode := range []model.ColorMode{model.ColorByLanguage, model.ColorByAge, model.ColorByComplexity, model.ColorByDensity} {
		if got := BaseColor(n, mode, s); got != directoryBase {
			t.Errorf("directory color in mode %s = %v, want fixed directory base", mode, got)
		}
	}
}

func TestBaseColor_KnownAndUnknownLanguage(t *testing.T) {
	s := ScaleSet{Now: time.Now(), ComplexityMax: 10}
	if got := BaseColor(leafNode("Go", model.Metrics{}), model.ColorByLanguage, s); got != languageColors["Go"] {
		t.Errorf("Go should use its table color, got %v", got)
	}
	if got := BaseColor(leafNode("Befunge", model.Metrics{}), model.ColorByLanguage, s); got != neutralBase {
		t.Errorf("unknown language should fall back to neutral, got %v", got)
	}
}

func TestBaseColor_UnknownModeFallsBack(t *testing.T) {
	s := ScaleSet{Now: time.Now(), ComplexityMax: 10}
	if got := BaseColor(leafNode("Go", model.Metrics{}), model.ColorMode("sparkles"), s); got != neutralBase {
		t.Errorf("unknown mode should fall back to neutral, got %v", got)
	}
}

func TestComplexityScaleEndpoints(t *testing.T) {
	s := ScaleSet{Now: time.Now(), ComplexityMax: 100}
	cold := BaseColor(leafNode("Go", model.Metrics{Complexity: 0}), model.ColorByComplexity, s)
	hot := BaseColor(leafNode("Go", model.Metrics{Complexity: 100}), model.ColorByComplexity, s)
	if cold.DistanceRgb(heatCold) > 0.01 {
		t.Errorf("zero complexity should sit at the cold end, got %v", cold)
	}
	if hot.DistanceRgb(heatHot) > 0.01 {
		t.Errorf("max complexity should sit at the hot end, got %v", hot)
	}
}

func TestAgeHeat_Buckets(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		daysAgo float64
		want    float64
	}{
		{1, 1.0},
		{20, 0.75},
		{60, 0.5},
		{200, 0.25},
		{1000, 0},
	}
	for _, tc := range cases {
		mod := now.Add(-time.Duration(tc.daysAgo*24) * time.Hour)
		if got := ageHeat(mod, now); got != tc.want {
			t.Errorf("ageHeat(%v days) = %v, want %v", tc.daysAgo, got, tc.want)
		}
	}
	if got := ageHeat(time.Time{}, now); got != 0 {
		t.Errorf("zero timestamp should read cold, got %v", got)
	}
}

func TestDensityHeat(t *testing.T) {
	// 80 code lines out of 100 total.
	m := model.Metrics{Lines: 100, CommentLines: 15, BlankLines: 5}
	if got := densityHeat(m); got != 0.8 {
		t.Errorf("densityHeat = %v, want 0.8", got)
	}
	if got := densityHeat(model.Metrics{}); got != 0 {
		t.Errorf("empty metrics should read cold, got %v", got)
	}
}

func TestTextColorFor_LuminanceThreshold(t *testing.T) {
	light := colorful.Color{R: 0.95, G: 0.95, B: 0.95}
	dark := colorful.Color{R: 0.1, G: 0.1, B: 0.15}
	if TextColorFor(light) != textDark {
		t.Error("light fill should get dark text")
	}
	if TextColorFor(dark) != textLight {
		t.Error("dark fill should get light text")
	}
}

func TestBuildScales_Percentile(t *testing.T) {
	nodes := make([]*treemap.Node, 0, 21)
	for i := 0; i <= 19; i++ {
		nodes = append(nodes, leafNode("Go", model.Metrics{Complexity: i + 1}))
	}
	// One pathological outlier must not flatten the scale.
	nodes = append(nodes, leafNode("Go", model.Metrics{Complexity: 100000}))

	s := BuildScales(nodes, time.Now())
	if s.ComplexityMax >= 100000 {
		t.Errorf("ComplexityMax = %v, outlier should be cut by the percentile", s.ComplexityMax)
	}
	if s.ComplexityMax < 19 {
		t.Errorf("ComplexityMax = %v, too aggressive a cut", s.ComplexityMax)
	}
}

func TestBuildScales_EmptyLayout(t *testing.T) {
	s := BuildScales(nil, time.Now())
	if s.ComplexityMax != 1 {
		t.Errorf("empty scale ComplexityMax = %v, want 1", s.ComplexityMax)
	}
}
