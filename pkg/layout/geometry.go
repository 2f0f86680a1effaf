package layout

// Point2D is a 2D coordinate in layout space.
type Point2D struct {
	X, Y float64
}

// Size2D is a width/height pair, as reported by the measurer callback for
// intrinsic-size nodes.
type Size2D struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle: origin plus size.
type Rect struct {
	Origin Point2D
	Size   Size2D
}

// NewRect builds a Rect from raw coordinates.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Origin: Point2D{X: x, Y: y}, Size: Size2D{Width: w, Height: h}}
}

func (r Rect) left() float64   { return r.Origin.X }
func (r Rect) top() float64    { return r.Origin.Y }
func (r Rect) right() float64  { return r.Origin.X + r.Size.Width }
func (r Rect) bottom() float64 { return r.Origin.Y + r.Size.Height }

// Gaps is a four-sided inset (padding or margin) in top/right/bottom/left
// order.
type Gaps struct {
	Top, Right, Bottom, Left float64
}

// NewGaps builds a uniform Gaps on all four sides.
func NewGaps(all float64) Gaps {
	return Gaps{Top: all, Right: all, Bottom: all, Left: all}
}

// NewGapsSymmetric builds a Gaps with the same vertical and horizontal
// insets on opposing sides.
func NewGapsSymmetric(vertical, horizontal float64) Gaps {
	return Gaps{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// Horizontal returns the sum of the left and right insets.
func (g Gaps) Horizontal() float64 { return g.Left + g.Right }

// Vertical returns the sum of the top and bottom insets.
func (g Gaps) Vertical() float64 { return g.Top + g.Bottom }
