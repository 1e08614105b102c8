package index

import "fmt"

// Point is a location in pixel space.
type Point struct {
	X float64
	Y float64
}

// Translated returns a copy shifted by dx, dy.
func (p Point) Translated(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// NewRect constructs a rectangle from origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersection returns the overlapping region, or the zero Rect when
// the rectangles do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: min(r.Right(), other.Right()) - x,
		H: min(r.Bottom(), other.Bottom()) - y,
	}
}

// Union returns the smallest rectangle covering both. An empty
// rectangle acts as the identity.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.Right(), other.Right()) - x,
		H: max(r.Bottom(), other.Bottom()) - y,
	}
}

// Translated returns a copy shifted by dx, dy.
func (r Rect) Translated(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// WithHeight returns a copy with the given height.
func (r Rect) WithHeight(h float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: h}
}

// WithWidth returns a copy with the given width.
func (r Rect) WithWidth(w float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: w, H: r.H}
}

// IntersectsVertically reports whether the rectangle's vertical span
// overlaps [top, bottom).
func (r Rect) IntersectsVertically(top, bottom float64) bool {
	return r.Y < bottom && top < r.Bottom()
}

// String returns "x,y wxh" for debugging.
func (r Rect) String() string {
	return fmt.Sprintf("%.1f,%.1f %.1fx%.1f", r.X, r.Y, r.W, r.H)
}

// Segment is a line segment in pixel space, used for underline
// rendering.
type Segment struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// Translated returns a copy shifted by dx, dy.
func (s Segment) Translated(dx, dy float64) Segment {
	return Segment{X0: s.X0 + dx, Y0: s.Y0 + dy, X1: s.X1 + dx, Y1: s.Y1 + dy}
}

// ConsolidateRects merges rectangles that share a vertical span and
// touch or overlap horizontally. The input order is preserved for
// rectangles that cannot merge.
func ConsolidateRects(rects []Rect) []Rect {
	out := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if r.IsEmpty() {
			continue
		}
		merged := false
		for i := range out {
			o := out[i]
			if o.Y == r.Y && o.H == r.H && r.X <= o.Right() && o.X <= r.Right() {
				out[i] = o.Union(r)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, r)
		}
	}
	return out
}
