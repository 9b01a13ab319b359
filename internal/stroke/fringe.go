package stroke

import (
	"math"

	"github.com/gogpu/svgmesh/internal/geom"
)

// maxFringeMiter bounds how far a fringe vertex may be pushed out at a sharp
// corner, as a multiple of the width.
const maxFringeMiter = 4.0

// Fringe offsets a ring by width along its right-hand normal, which points
// away from the filled area for a counter-clockwise outer ring and for a
// clockwise hole. It returns the ring points and their offset partners in
// the same order, without a repeated closing point.
func Fringe(ring []Point, width float64) (inner, outer []Point) {
	inner = geom.Open(geom.Dedupe(ring))
	n := len(inner)
	if n < 3 || width == 0 {
		return nil, nil
	}

	outer = make([]Point, n)
	for i := range inner {
		prev := inner[(i+n-1)%n]
		cur := inner[i]
		next := inner[(i+1)%n]

		n0 := rightNormal(cur.Sub(prev))
		n1 := rightNormal(next.Sub(cur))
		bis := n0.Add(n1).Normalize()
		if bis == (Point{}) {
			bis = n1
		}
		cos := bis.Dot(n1)
		scale := maxFringeMiter
		if cos > 1/maxFringeMiter {
			scale = 1 / cos
		}
		outer[i] = cur.Add(bis.Mul(width * scale))
	}
	return inner, outer
}

// FringeTriangles returns quad-strip indices for a fringe of n vertex pairs
// laid out as inner[0..n) followed by outer[0..n).
func FringeTriangles(n int) []uint32 {
	if n < 3 {
		return nil
	}
	idx := make([]uint32, 0, 6*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := uint32(i), uint32(j)
		c, d := uint32(n+i), uint32(n+j)
		idx = append(idx, a, c, b, b, c, d)
	}
	return idx
}

func rightNormal(v Point) Point {
	l := v.Length()
	if l < geom.Epsilon || math.IsNaN(l) {
		return Point{}
	}
	return Point{X: v.Y / l, Y: -v.X / l}
}
