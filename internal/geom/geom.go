// Package geom holds the float64 geometry primitives shared by the mesh
// pipeline stages.
package geom

import "math"

// Epsilon is the distance under which two points are considered equal.
const Epsilon = 1e-9

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the vector length.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// LengthSquared returns the squared vector length.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Perp returns p rotated 90 degrees counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Normalize returns a unit vector, or the zero vector for degenerate input.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < Epsilon {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Angle returns atan2(y, x).
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Equal reports whether p and q are within Epsilon of each other.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

// Rect is an axis-aligned rectangle stored as min/max corners.
// The zero Rect is a degenerate rectangle at the origin; use EmptyRect for
// an accumulator that any point will grow.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyRect returns an inverted infinite rectangle.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// RectXYWH builds a rectangle from origin and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// IsEmpty reports whether the rectangle contains no points at all.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Encapsulate grows r to contain p.
func (r *Rect) Encapsulate(p Point) {
	r.MinX = math.Min(r.MinX, p.X)
	r.MinY = math.Min(r.MinY, p.Y)
	r.MaxX = math.Max(r.MaxX, p.X)
	r.MaxY = math.Max(r.MaxY, p.Y)
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX), MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX), MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Overlaps reports whether the rectangles share any point, edges included.
func (r Rect) Overlaps(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX &&
		r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Size returns width and height as a vector.
func (r Rect) Size() Point {
	return Point{X: r.Width(), Y: r.Height()}
}

// Scale returns r scaled about its center.
func (r Rect) Scale(s float64) Rect {
	c := r.Center()
	hw, hh := r.Width()*s/2, r.Height()*s/2
	return Rect{MinX: c.X - hw, MinY: c.Y - hh, MaxX: c.X + hw, MaxY: c.Y + hh}
}

// Bounds returns the bounding box of the points, or EmptyRect for none.
func Bounds(pts []Point) Rect {
	r := EmptyRect()
	for _, p := range pts {
		r.Encapsulate(p)
	}
	return r
}

// BoundsAll returns the bounding box of several contours.
func BoundsAll(contours [][]Point) Rect {
	r := EmptyRect()
	for _, c := range contours {
		for _, p := range c {
			r.Encapsulate(p)
		}
	}
	return r
}

// Polygon is a simple outer ring with zero or more hole rings.
// The outer ring has positive signed area, holes negative.
type Polygon struct {
	Outer []Point
	Holes [][]Point
}

// Contours returns the outer ring followed by the holes.
func (p Polygon) Contours() [][]Point {
	out := make([][]Point, 0, 1+len(p.Holes))
	out = append(out, p.Outer)
	return append(out, p.Holes...)
}

// Area returns the filled area (outer minus holes).
func (p Polygon) Area() float64 {
	a := SignedArea(p.Outer)
	for _, h := range p.Holes {
		a += SignedArea(h)
	}
	return a
}
