package geom

import "math"

// SignedArea returns the shoelace area of a ring. The ring may or may not
// repeat its first point. Positive means counter-clockwise in a y-up frame.
func SignedArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// TriangleArea returns the signed area of triangle abc.
func TriangleArea(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

// Reverse reverses pts in place and returns it.
func Reverse(pts []Point) []Point {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	return pts
}

// IsClosed reports whether the last point repeats the first.
func IsClosed(pts []Point) bool {
	return len(pts) > 1 && pts[0].Equal(pts[len(pts)-1])
}

// Open drops a trailing point that repeats the first.
func Open(pts []Point) []Point {
	if IsClosed(pts) {
		return pts[:len(pts)-1]
	}
	return pts
}

// Dedupe removes consecutive duplicate points. The input is not modified.
func Dedupe(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if !p.Equal(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

// PointInRing reports whether p lies inside the ring using the even-odd rule.
func PointInRing(p Point, ring []Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// IsConvex reports whether the ring is convex. Collinear runs are allowed.
func IsConvex(pts []Point) bool {
	pts = Open(pts)
	n := len(pts)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := pts[i], pts[(i+1)%n], pts[(i+2)%n]
		cr := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cr) < Epsilon {
			continue
		}
		s := 1
		if cr < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return sign != 0
}

// Simplify reduces a polyline with the Douglas-Peucker algorithm. Points
// closer than tolerance to the simplified line are dropped. The endpoints are
// always kept.
func Simplify(pts []Point, tolerance float64) []Point {
	if len(pts) < 3 || tolerance <= 0 {
		return append([]Point(nil), pts...)
	}
	keep := make([]bool, len(pts))
	keep[0], keep[len(pts)-1] = true, true
	douglasPeucker(pts, 0, len(pts)-1, tolerance, keep)

	out := make([]Point, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

func douglasPeucker(pts []Point, first, last int, tolerance float64, keep []bool) {
	for last-first > 1 {
		maxDist := 0.0
		index := first
		for i := first + 1; i < last; i++ {
			d := DistanceToSegment(pts[i], pts[first], pts[last])
			if d > maxDist {
				maxDist = d
				index = i
			}
		}
		if maxDist <= tolerance {
			return
		}
		keep[index] = true
		douglasPeucker(pts, first, index, tolerance, keep)
		first = index
	}
}

// DistanceToSegment returns the distance from p to segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 < Epsilon*Epsilon {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// PolylineLength returns the sum of segment lengths.
func PolylineLength(pts []Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i].Distance(pts[i-1])
	}
	return l
}
