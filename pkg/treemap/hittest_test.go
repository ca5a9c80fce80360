package treemap

import (
	"testing"

	"reposcope/pkg/model"
)

func buildHitFixture(t *testing.T) *Layout {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.LabelMinWidth = 50
	cfg.LabelHeight = 10
	cfg.MaxNestingDepth = 4

	root := dir("", "",
		dir("src", "src",
			fileAt("a.go", "src/a.go", 300),
			fileAt("b.go", "src/b.go", 100),
		),
		fileAt("main.go", "main.go", 100),
	)
	l := Build(root, 400, 200, cfg)
	if l.Empty() {
		t.Fatal("fixture layout is empty")
	}
	return l
}

func TestNodeAt_LeafWins(t *testing.T) {
	l := buildHitFixture(t)
	leaf := l.FindPath("src/a.go")

	cx := leaf.Rect.CenterX()
	cy := leaf.Rect.CenterY()
	got := l.NodeAt(cx, cy)
	if got != leaf {
		t.Errorf("NodeAt(center of src/a.go) = %v, want the leaf itself", gotPath(got))
	}
}

func TestNodeAt_LabelBandHitsDirectory(t *testing.T) {
	l := buildHitFixture(t)
	src := l.FindPath("src")
	if src == nil || !src.HasLabelStrip {
		t.Skip("fixture directory has no label strip at this size")
	}

	x := src.Rect.CenterX()
	y := src.Rect.Y0 + l.Config.LabelHeight/2
	got := l.NodeAt(x, y)
	if got != src {
		t.Errorf("NodeAt(label band) = %v, want src", gotPath(got))
	}
}

func TestNodeAt_OutsideReturnsNil(t *testing.T) {
	l := buildHitFixture(t)
	for _, pt := range [][2]float64{{-1, -1}, {-0.5, 50}, {400, 100}, {100, 200}, {1e9, 1e9}} {
		if got := l.NodeAt(pt[0], pt[1]); got != nil {
			t.Errorf("NodeAt(%v, %v) = %v, want nil", pt[0], pt[1], gotPath(got))
		}
	}
}

func TestNodeAt_RightBottomExclusive(t *testing.T) {
	l := buildHitFixture(t)
	// The far edges of the container belong to no tile.
	if got := l.NodeAt(400, 100); got != nil {
		t.Errorf("x == x1 should miss, got %v", gotPath(got))
	}
	if got := l.NodeAt(0, 0); got == nil {
		t.Error("x0/y0 corner should hit")
	}
}

func TestNodeAt_SubPixelChildLeavesBodyUnmatched(t *testing.T) {
	// A directory body covered only by sub-pixel children is not
	// independently clickable: the point is simply unmatched.
	cfg := model.DefaultConfig()
	cfg.LabelMinWidth = 1e9 // no strips anywhere

	many := dir("many", "many", fileAt("dom.go", "many/dom.go", 100000))
	for i := 0; i < 50; i++ {
		name := "s" + string(rune('a'+i/26)) + string(rune('a'+i%26)) + ".go"
		many.Children = append(many.Children, fileAt(name, "many/"+name, 1))
	}
	root := dir("", "",
		many,
		fileAt("solo.go", "solo.go", 100050),
	)
	l := Build(root, 400, 200, cfg)

	var sliver *Node
	for _, n := range l.Nodes {
		if n.IsLeaf && !n.Drawable() {
			sliver = n
			break
		}
	}
	if sliver == nil {
		t.Fatal("fixture should contain sub-pixel leaves")
	}
	x := (sliver.Rect.X0 + sliver.Rect.X1) / 2
	y := (sliver.Rect.Y0 + sliver.Rect.Y1) / 2
	if got := l.NodeAt(x, y); got != nil {
		t.Errorf("point over sub-pixel child should be unmatched, got %v", gotPath(got))
	}
}

func TestNodeAt_EmptyLayout(t *testing.T) {
	var l *Layout
	if l.NodeAt(1, 1) != nil {
		t.Error("nil layout should return nil")
	}
	empty := Build(nil, 100, 100, model.DefaultConfig())
	if empty.NodeAt(1, 1) != nil {
		t.Error("empty layout should return nil")
	}
}

func gotPath(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Data.Path
}
