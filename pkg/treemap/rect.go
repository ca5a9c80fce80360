package treemap

// Rect is an axis-aligned rectangle in pixel space. Edges are half-open:
// a point belongs to the rectangle when x0 <= x < x1 and y0 <= y < y1, so
// adjacent tiles sharing an edge never both claim it.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) W() float64 { return r.X1 - r.X0 }
func (r Rect) H() float64 { return r.Y1 - r.Y0 }

// Area returns the rectangle's area in px².
func (r Rect) Area() float64 { return r.W() * r.H() }

// CenterX and CenterY return the geometric center.
func (r Rect) CenterX() float64 { return (r.X0 + r.X1) / 2 }
func (r Rect) CenterY() float64 { return (r.Y0 + r.Y1) / 2 }

// Contains reports whether the point lies inside r under the half-open test.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}
