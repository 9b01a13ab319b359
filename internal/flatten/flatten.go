// Package flatten converts curve-bearing path elements into polylines with a
// vertex density chosen by the caller.
package flatten

import (
	"math"

	"github.com/gogpu/svgmesh/internal/geom"
)

// Point is the shared geometry point.
type Point = geom.Point

// MaxSegments caps the subdivision count of a single curve.
const MaxSegments = 256

// Element represents an element in a path.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

func (MoveTo) isElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isElement() {}

// Subpath is one flattened contour.
type Subpath struct {
	Points []Point
	Closed bool
}

// Flatten converts elements into subpaths. Curves are split into straight
// segments roughly spacing units long. A closed subpath repeats its first
// point at the end.
func Flatten(elements []Element, spacing float64) []Subpath {
	var (
		out     []Subpath
		current []Point
		start   Point
		last    Point
	)
	flush := func(closed bool) {
		if len(current) > 0 {
			out = append(out, Subpath{Points: current, Closed: closed})
		}
		current = nil
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			start, last = e.Point, e.Point
			current = []Point{e.Point}

		case LineTo:
			if current == nil {
				current = []Point{last}
			}
			current = append(current, e.Point)
			last = e.Point

		case QuadTo:
			if current == nil {
				current = []Point{last}
			}
			current = append(current, Quad(last, e.Control, e.Point, spacing)...)
			last = e.Point

		case CubicTo:
			if current == nil {
				current = []Point{last}
			}
			current = append(current, Cubic(last, e.Control1, e.Control2, e.Point, spacing)...)
			last = e.Point

		case Close:
			if len(current) > 0 {
				if !current[len(current)-1].Equal(start) {
					current = append(current, start)
				}
				flush(true)
			}
			last = start
		}
	}
	flush(false)
	return out
}

// Segments returns how many straight pieces a curve of the given control
// polygon length needs at the given spacing.
func Segments(length, spacing float64) int {
	if spacing <= 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return 1
	}
	n := int(math.Ceil(length / spacing))
	switch {
	case n < 1:
		return 1
	case n > MaxSegments:
		return MaxSegments
	}
	return n
}

// Cubic samples a cubic Bezier at a uniform parameter step. The start point
// is not included; the end point always is.
func Cubic(p0, p1, p2, p3 Point, spacing float64) []Point {
	l := p0.Distance(p1) + p1.Distance(p2) + p2.Distance(p3)
	n := Segments(l, spacing)
	points := make([]Point, 0, n)
	for i := 1; i < n; i++ {
		points = append(points, CubicAt(p0, p1, p2, p3, float64(i)/float64(n)))
	}
	return append(points, p3)
}

// Quad samples a quadratic Bezier like Cubic.
func Quad(p0, p1, p2 Point, spacing float64) []Point {
	l := p0.Distance(p1) + p1.Distance(p2)
	n := Segments(l, spacing)
	points := make([]Point, 0, n)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		points = append(points, Point{
			X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
			Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
		})
	}
	return append(points, p2)
}

// CubicAt evaluates a cubic Bezier at t.
func CubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// CubicAdaptive flattens a cubic by recursive subdivision until the control
// points are within tolerance of the chord. The start point is not included.
func CubicAdaptive(p0, p1, p2, p3 Point, tolerance float64) []Point {
	var points []Point
	cubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

func cubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	d1 := geom.DistanceToSegment(p1, p0, p3)
	d2 := geom.DistanceToSegment(p2, p0, p3)
	if math.Max(d1, d2) < tolerance || depth >= 16 {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	cubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	cubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}
