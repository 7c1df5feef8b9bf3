// Package geometry provides the alignment calculator for drag and rotate
// manipulation: 2D primitives, snap-to-sibling alignment, and angle
// snapping. It is pure math; the render layer draws the returned guides.
package geometry

// Point is a 2D position.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X, Y, W, H float64
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the center point.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Translate returns the rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}
