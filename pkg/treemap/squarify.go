package treemap

import "math"

// squarify partitions r into len(weights) gap-free sub-rectangles whose
// areas are proportional to the weights, keeping aspect ratios near 1.
// Weights must be positive and sorted in descending order; the result is in
// input order. Rows are laid along the longer side of the remaining
// rectangle and a new row starts when adding the next item would worsen the
// row's worst aspect ratio.
//
// The last row and the last item of every row are snapped to the remaining
// edge, so the sub-rectangles tile r exactly.
func squarify(weights []float64, r Rect) []Rect {
	out := make([]Rect, len(weights))
	if len(weights) == 0 {
		return out
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || r.W() <= 0 || r.H() <= 0 {
		// Degenerate space: stack zero-area slivers at the origin edge.
		for i := range out {
			out[i] = Rect{r.X0, r.Y0, r.X0, r.Y0}
		}
		return out
	}

	// Pre-scale weights to absolute areas.
	scale := r.Area() / total
	areas := make([]float64, len(weights))
	for i, w := range weights {
		areas[i] = w * scale
	}

	rem := r
	i := 0
	for i < len(areas) {
		// Rows run along the longer side of the remaining rectangle.
		horizontal := rem.W() >= rem.H()
		length := math.Max(rem.W(), rem.H())

		// Greedily grow the row while the worst aspect ratio improves.
		rowSum := areas[i]
		rowMin, rowMax := areas[i], areas[i]
		end := i + 1
		for end < len(areas) {
			a := areas[end]
			newSum := rowSum + a
			newMin := math.Min(rowMin, a)
			newMax := math.Max(rowMax, a)
			if worstAspect(newSum, newMin, newMax, length) > worstAspect(rowSum, rowMin, rowMax, length) {
				break
			}
			rowSum, rowMin, rowMax = newSum, newMin, newMax
			end++
		}

		thickness := rowSum / length
		last := end == len(areas)
		if horizontal {
			rowY1 := rem.Y0 + thickness
			if last {
				rowY1 = rem.Y1
			}
			layoutRow(out[i:end], areas[i:end], Rect{rem.X0, rem.Y0, rem.X1, rowY1}, true)
			rem.Y0 = rowY1
		} else {
			rowX1 := rem.X0 + thickness
			if last {
				rowX1 = rem.X1
			}
			layoutRow(out[i:end], areas[i:end], Rect{rem.X0, rem.Y0, rowX1, rem.Y1}, false)
			rem.X0 = rowX1
		}
		i = end
	}
	return out
}

// worstAspect returns the worst aspect ratio across a row with total area
// sum, item-area extremes amin/amax, laid along a side of the given length.
func worstAspect(sum, amin, amax, length float64) float64 {
	t := sum / length
	if t <= 0 || amin <= 0 {
		return math.MaxFloat64
	}
	return math.Max(amax/(t*t), (t*t)/amin)
}

// layoutRow splits a single row rectangle among its items proportionally to
// their areas. The final item is snapped to the row's far edge.
func layoutRow(out []Rect, areas []float64, row Rect, horizontal bool) {
	total := 0.0
	for _, a := range areas {
		total += a
	}
	if total <= 0 {
		for i := range out {
			out[i] = Rect{row.X0, row.Y0, row.X0, row.Y0}
		}
		return
	}

	if horizontal {
		// Items run left to right across the row.
		x := row.X0
		for i, a := range areas {
			w := a / total * row.W()
			x1 := x + w
			if i == len(areas)-1 {
				x1 = row.X1
			}
			out[i] = Rect{x, row.Y0, x1, row.Y1}
			x = x1
		}
	} else {
		y := row.Y0
		for i, a := range areas {
			h := a / total * row.H()
			y1 := y + h
			if i == len(areas)-1 {
				y1 = row.Y1
			}
			out[i] = Rect{row.X0, y, row.X1, y1}
			y = y1
		}
	}
}
