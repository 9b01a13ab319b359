package tess

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/svgmesh/internal/geom"
)

// ErrIllConditioned marks input that is ear clipped without trying the
// sweep. The sweep recurses without bound on rings that repeat a vertex,
// touch each other or run nearly collinear, and that failure cannot be
// recovered.
var ErrIllConditioned = errors.New("tess: polygon is ill-conditioned for the sweep")

// clearance is the minimum distance, relative to the bounding box diagonal,
// between a vertex and any edge not incident to it.
const clearance = 1e-4

// minTurn is the smallest sine of the turn at a vertex. Flatter vertices
// make a collinear run.
const minTurn = 1e-6

// maxSweepVertices bounds the quadratic conditioning check. Larger polygons
// are ear clipped.
const maxSweepVertices = 4096

// conditioned reports whether the sweep may be given outer and holes. The
// rings must be vertex-disjoint and free of crossings and collinear runs.
// Every vertex must stay clearance away from the edges it does not belong
// to, and holes must lie inside the outer ring.
func conditioned(outer []Point, holes [][]Point) error {
	rings := make([][]Point, 0, 1+len(holes))
	rings = append(rings, outer)
	rings = append(rings, holes...)

	n := 0
	bounds := geom.EmptyRect()
	for _, r := range rings {
		n += len(r)
		for _, p := range r {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return fmt.Errorf("%w: non-finite vertex", ErrIllConditioned)
			}
			bounds.Encapsulate(p)
		}
	}
	if n > maxSweepVertices {
		return fmt.Errorf("%w: %d vertices", ErrIllConditioned, n)
	}
	diag := math.Hypot(bounds.Width(), bounds.Height())
	if diag == 0 {
		return fmt.Errorf("%w: empty bounds", ErrIllConditioned)
	}
	minDist := clearance * diag

	for _, r := range rings {
		for i, b := range r {
			a, c := r[(i+len(r)-1)%len(r)], r[(i+1)%len(r)]
			u, v := b.Sub(a), c.Sub(b)
			if math.Abs(u.Cross(v)) < minTurn*u.Length()*v.Length() {
				return fmt.Errorf("%w: collinear run at %v", ErrIllConditioned, b)
			}
		}
	}

	seen := make(map[Point]struct{}, n)
	for _, r := range rings {
		for _, p := range r {
			if _, dup := seen[p]; dup {
				return fmt.Errorf("%w: repeated vertex %v", ErrIllConditioned, p)
			}
			seen[p] = struct{}{}
		}
	}

	for _, h := range holes {
		for _, p := range h {
			if !geom.PointInRing(p, outer) {
				return fmt.Errorf("%w: hole vertex %v outside the outer ring", ErrIllConditioned, p)
			}
		}
	}

	for ri, r := range rings {
		for vi, p := range r {
			for rj, s := range rings {
				for ej := range s {
					a, b := s[ej], s[(ej+1)%len(s)]
					if ri == rj && (ej == vi || (ej+1)%len(s) == vi) {
						continue
					}
					if geom.DistanceToSegment(p, a, b) < minDist {
						return fmt.Errorf("%w: vertex %v is too close to edge %v-%v", ErrIllConditioned, p, a, b)
					}
				}
			}
		}
	}

	// With every vertex clear of every foreign edge, two edges can only meet
	// by crossing in their interiors.
	for ri, r := range rings {
		for ei := range r {
			a, b := r[ei], r[(ei+1)%len(r)]
			for rj := ri; rj < len(rings); rj++ {
				s := rings[rj]
				start := 0
				if rj == ri {
					start = ei + 2
				}
				for ej := start; ej < len(s); ej++ {
					if rj == ri && (ej+1)%len(s) == ei {
						continue
					}
					if segmentsCross(a, b, s[ej], s[(ej+1)%len(s)]) {
						return fmt.Errorf("%w: edges cross", ErrIllConditioned)
					}
				}
			}
		}
	}
	return nil
}
