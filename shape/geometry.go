package shape

import "math"

// Point represents a 2D point in canvas units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r or on its edge.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: math.Max(0, r.W-2*d), H: math.Max(0, r.H-2*d)}
}

// Geometry is a shape's hit-testing outline in shape-local coordinates.
type Geometry struct {
	Bounds Rect
	// Filled reports whether the interior is hit-testable. Unfilled
	// geometry only answers to points near its border.
	Filled bool
}

// HitTest reports whether p, in shape-local coordinates, selects the shape
// when the pointer tolerance is margin.
func (g Geometry) HitTest(p Point, margin float64) bool {
	outer := g.Bounds.Inset(-margin)
	if !outer.Contains(p) {
		return false
	}
	if g.Filled {
		return true
	}
	inner := g.Bounds.Inset(margin)
	if inner.W == 0 || inner.H == 0 {
		return true
	}
	// Strictly inside the inner rectangle is the interior.
	return !(p.X > inner.X && p.X < inner.X+inner.W && p.Y > inner.Y && p.Y < inner.Y+inner.H)
}
