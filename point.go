package svgmesh

import "github.com/gogpu/svgmesh/internal/geom"

// Point represents a 2D point or vector.
type Point = geom.Point

// Rect is an axis-aligned rectangle. The zero value is a degenerate
// rectangle at the origin; use [EmptyRect] to start an accumulation.
type Rect = geom.Rect

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// EmptyRect returns the inverse-infinite rectangle that any Encapsulate
// call replaces.
func EmptyRect() Rect {
	return geom.EmptyRect()
}

// RectXYWH creates a rectangle from its origin and size.
func RectXYWH(x, y, w, h float64) Rect {
	return geom.RectXYWH(x, y, w, h)
}

// Bounds returns the bounding rectangle of all contours.
func Bounds(contours [][]Point) Rect {
	return geom.BoundsAll(contours)
}
