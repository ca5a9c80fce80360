package treemap

// NodeAt maps a pointer coordinate to the topmost interactive node, or nil.
// Candidates are scanned in descending depth order so a point inside a leaf
// nested several levels deep resolves to that leaf, not an ancestor.
//
// A leaf matches anywhere inside its rectangle. A subdivided directory
// matches only inside its visible label band: its body is tiled by children,
// so a point below the band that no child claims (hidden or sub-pixel
// children) is simply unmatched. Containment is right/bottom-exclusive,
// matching the drawn tiling exactly.
func (l *Layout) NodeAt(x, y float64) *Node {
	if l.Empty() {
		return nil
	}
	for _, n := range l.byDepth {
		if !n.Drawable() || !n.Rect.Contains(x, y) {
			continue
		}
		if n.IsLeaf {
			return n
		}
		if n.HasLabelStrip && y < n.Rect.Y0+l.Config.LabelHeight {
			return n
		}
	}
	return nil
}
