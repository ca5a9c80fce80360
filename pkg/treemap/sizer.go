package treemap

import "reposcope/pkg/model"

// bytesPerLineEstimate approximates byte size for files whose byte count is
// unknown but whose line count is not.
const bytesPerLineEstimate = 40

// Weight resolves a single node's own contribution to layout area under the
// given size mode. Directories always resolve to 0: their area is the
// emergent sum of their descendants, never a stored value.
func Weight(n *model.TreeNode, mode model.SizeMode) float64 {
	if n == nil || n.Kind != model.KindFile {
		return 0
	}
	switch mode {
	case model.SizeLOC:
		// Degenerate (empty) files still claim a sliver of area.
		if n.Metrics.Lines < 1 {
			return 1
		}
		return float64(n.Metrics.Lines)
	case model.SizeBytes:
		if n.Metrics.Bytes > 0 {
			return float64(n.Metrics.Bytes)
		}
		return float64(n.Metrics.Lines * bytesPerLineEstimate)
	case model.SizeFiles:
		return 1
	case model.SizeComplexity:
		// Zero is a legitimate complexity; such files get no area.
		return float64(n.Metrics.Complexity)
	}
	return 0
}

// aggregateWeights fills weights with the total resolved weight of every
// subtree, post-order, and returns the root's total. Subtrees whose total is
// 0 are later omitted from partitioning entirely.
func aggregateWeights(n *model.TreeNode, mode model.SizeMode, weights map[*model.TreeNode]float64) float64 {
	if n == nil {
		return 0
	}
	total := Weight(n, mode)
	for _, c := range n.Children {
		total += aggregateWeights(c, mode, weights)
	}
	weights[n] = total
	return total
}
