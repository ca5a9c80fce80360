// Package treemap implements the squarified treemap layout engine: it turns
// a weighted file tree into an immutable tree of pixel rectangles plus a
// flat index used for rendering and hit testing.
package treemap

import (
	"math"
	"sort"

	"reposcope/pkg/model"
)

// Node is one positioned tile of a layout. The whole Node tree is rebuilt
// from scratch on every Build call; identity across rebuilds exists only
// through Data.Path equality.
type Node struct {
	// Data points at the originating tree node and is never mutated.
	Data *model.TreeNode

	Rect  Rect
	Depth int

	// IsLeaf marks tiles drawn undivided: files, directories truncated by
	// the depth limit, and sub-pixel directories that are never subdivided.
	IsLeaf bool

	// HasLabelStrip is set when the tile reserves a label band at its top.
	// The decision is local: two sibling directories of different widths
	// can differ.
	HasLabelStrip bool

	// Weight is the aggregate resolved weight of the subtree, including
	// descendants hidden by depth truncation.
	Weight float64

	// Parent is a non-owning back-reference used for lookups such as the
	// vignette parent bias.
	Parent   *Node
	Children []*Node
}

// Drawable reports whether the tile is at least one device pixel in both
// dimensions. Sub-pixel tiles stay in the tree for aggregate correctness
// but are neither drawn nor hit-testable.
func (n *Node) Drawable() bool {
	return n.Rect.W() >= 1 && n.Rect.H() >= 1
}

// ContentRect returns the rectangle available to the node's children: the
// node's own rectangle minus the label band when one is reserved.
func (n *Node) ContentRect(labelHeight float64) Rect {
	r := n.Rect
	if n.HasLabelStrip {
		r.Y0 += labelHeight
		if r.Y0 > r.Y1 {
			r.Y0 = r.Y1
		}
	}
	return r
}

// Layout is the immutable result of one Build call.
type Layout struct {
	// Root is nil for an empty layout.
	Root *Node

	// Nodes lists every node in depth-first pre-order.
	Nodes []*Node

	// Config is the normalized configuration the layout was built with.
	Config model.Config

	byDepth []*Node // Nodes sorted by descending depth, for hit testing
}

// Empty reports whether the layout contains no tiles.
func (l *Layout) Empty() bool {
	return l == nil || l.Root == nil
}

// FindPath returns the layout node whose data path matches, or nil. Callers
// use it to re-locate a hovered or selected node after a rebuild.
func (l *Layout) FindPath(path string) *Node {
	if l == nil {
		return nil
	}
	for _, n := range l.Nodes {
		if n.Data.Path == path {
			return n
		}
	}
	return nil
}

// Build lays the tree out into a width x height rectangle. It is a pure
// function of its inputs: identical calls produce bit-identical rectangles.
// Degenerate dimensions (zero, negative, NaN, Inf) and zero-weight trees
// produce an empty layout rather than an error.
func Build(root *model.TreeNode, width, height float64, cfg model.Config) *Layout {
	cfg = cfg.Normalized()
	l := &Layout{Config: cfg}

	if root == nil || !isFinitePositive(width) || !isFinitePositive(height) {
		return l
	}

	weights := make(map[*model.TreeNode]float64)
	if aggregateWeights(root, cfg.SizeMode, weights) <= 0 {
		return l
	}

	b := &builder{cfg: cfg, weights: weights}
	l.Root = &Node{
		Data:   root,
		Rect:   Rect{0, 0, width, height},
		Weight: weights[root],
	}
	b.nodes = append(b.nodes, l.Root)
	b.layoutChildren(l.Root)
	l.Nodes = b.nodes

	l.byDepth = make([]*Node, len(l.Nodes))
	copy(l.byDepth, l.Nodes)
	sort.SliceStable(l.byDepth, func(i, j int) bool {
		return l.byDepth[i].Depth > l.byDepth[j].Depth
	})
	return l
}

type builder struct {
	cfg     model.Config
	weights map[*model.TreeNode]float64
	nodes   []*Node
}

// layoutChildren partitions n's content rectangle among its positive-weight
// children and recurses. Each directory level runs its own squarify pass in
// absolute coordinates; children are never derived by scaling a single
// global layout, because that would ignore each subtree's own aspect-ratio
// optimization.
func (b *builder) layoutChildren(n *Node) {
	if n.Data.Kind == model.KindFile {
		n.IsLeaf = true
		return
	}
	if n.Depth == b.cfg.MaxNestingDepth {
		// Truncated: the tile keeps its full aggregate weight but its
		// descendants get no rectangles.
		n.IsLeaf = true
		return
	}
	if !n.Drawable() {
		// Sub-pixel subtrees are never subdivided.
		n.IsLeaf = true
		return
	}

	kids := sortChildren(n.Data.Children, b.weights)
	if len(kids) == 0 {
		n.IsLeaf = true
		return
	}

	// The label strip decision is made per directory, based on its own
	// width only.
	n.HasLabelStrip = n.Rect.W() >= b.cfg.LabelMinWidth
	content := n.ContentRect(b.cfg.LabelHeight)

	ws := make([]float64, len(kids))
	for i, k := range kids {
		ws[i] = b.weights[k]
	}
	rects := squarify(ws, content)

	n.Children = make([]*Node, len(kids))
	for i, k := range kids {
		child := &Node{
			Data:   k,
			Rect:   rects[i],
			Depth:  n.Depth + 1,
			Weight: ws[i],
			Parent: n,
		}
		n.Children[i] = child
		b.nodes = append(b.nodes, child)
		b.layoutChildren(child)
	}
}

// sortChildren returns the positive-weight children ordered by descending
// aggregate weight. Ties break alphabetically by name so the layout is
// deterministic regardless of input child order.
func sortChildren(children []*model.TreeNode, weights map[*model.TreeNode]float64) []*model.TreeNode {
	kids := make([]*model.TreeNode, 0, len(children))
	for _, c := range children {
		if weights[c] > 0 {
			kids = append(kids, c)
		}
	}
	sort.SliceStable(kids, func(i, j int) bool {
		wi, wj := weights[kids[i]], weights[kids[j]]
		if wi != wj {
			return wi > wj
		}
		return kids[i].Name < kids[j].Name
	})
	return kids
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
