package tess

import (
	"math"
	"sort"

	"github.com/gogpu/svgmesh/internal/geom"
)

// earClip triangulates a counter-clockwise outer ring with clockwise holes.
// Holes are first bridged into the outer ring so that a single ring
// remains. Indices refer to the outer ring followed by each hole in order.
func earClip(outer []Point, holes [][]Point) []int {
	verts := append([]Point(nil), outer...)
	ring := make([]int, len(outer))
	for i := range ring {
		ring[i] = i
	}

	type hole struct {
		base int
		n    int
		maxX float64
	}
	hs := make([]hole, len(holes))
	for i, h := range holes {
		hs[i] = hole{base: len(verts), n: len(h), maxX: math.Inf(-1)}
		for _, p := range h {
			hs[i].maxX = math.Max(hs[i].maxX, p.X)
		}
		verts = append(verts, h...)
	}
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].maxX > hs[j].maxX })

	pending := make([][]int, len(hs))
	for i, h := range hs {
		pending[i] = make([]int, h.n)
		for k := range pending[i] {
			pending[i][k] = h.base + k
		}
	}
	for len(pending) > 0 {
		ring = bridge(verts, ring, pending[0], pending[1:])
		pending = pending[1:]
	}

	return clipEars(verts, ring)
}

// bridge splices hole into ring through the closest visible vertex pair,
// starting from the rightmost hole vertex.
func bridge(verts []Point, ring, hole []int, others [][]int) []int {
	hm := 0
	for i, v := range hole {
		if verts[v].X > verts[hole[hm]].X {
			hm = i
		}
	}
	m := verts[hole[hm]]

	order := make([]int, len(ring))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		pi, pj := verts[ring[order[i]]], verts[ring[order[j]]]
		ri, rj := pi.X < m.X, pj.X < m.X
		if ri != rj {
			return !ri
		}
		return pi.Distance(m) < pj.Distance(m)
	})

	// A vertex the ring visits twice is bridged at the visit whose corner
	// opens towards the hole.
	target := -1
	for _, ri := range order {
		if !visible(verts, m, verts[ring[ri]], ring, hole, others) {
			continue
		}
		if target < 0 {
			target = ri
		}
		if locallyInside(verts, ring, ri, m) {
			target = ri
			break
		}
	}
	if target < 0 {
		target = order[0]
	}

	out := make([]int, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:target+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(hm+k)%len(hole)])
	}
	out = append(out, ring[target:]...)
	return out
}

// visible reports whether segment a-b crosses no edge of the ring, the hole
// being bridged, or the holes still waiting.
func visible(verts []Point, a, b Point, ring, hole []int, others [][]int) bool {
	crosses := func(r []int) bool {
		for i := range r {
			if segmentsCross(a, b, verts[r[i]], verts[r[(i+1)%len(r)]]) {
				return true
			}
		}
		return false
	}
	if crosses(ring) || crosses(hole) {
		return false
	}
	for _, o := range others {
		if crosses(o) {
			return false
		}
	}
	return true
}

// segmentsCross reports a proper crossing between segments ab and pq.
// Shared endpoints do not count.
func segmentsCross(a, b, p, q Point) bool {
	if a.Equal(p) || a.Equal(q) || b.Equal(p) || b.Equal(q) {
		return false
	}
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := b.Sub(a).Cross(q.Sub(a))
	d3 := q.Sub(p).Cross(a.Sub(p))
	d4 := q.Sub(p).Cross(b.Sub(p))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// locallyInside reports whether the direction from ring vertex i towards m
// starts inside the counter-clockwise ring.
func locallyInside(verts []Point, ring []int, i int, m Point) bool {
	n := len(ring)
	a, b, c := verts[ring[(i+n-1)%n]], verts[ring[i]], verts[ring[(i+1)%n]]
	in, out, d := b.Sub(a), c.Sub(b), m.Sub(b)
	if in.Cross(out) >= 0 {
		return in.Cross(d) >= 0 && out.Cross(d) >= 0
	}
	return in.Cross(d) >= 0 || out.Cross(d) >= 0
}

// clipEars triangulates a single counter-clockwise ring. Vertices enclosing
// no area are unlinked without a triangle. After a full pass without an ear
// the next convex vertex is clipped anyway, and after two any vertex, so the
// loop always ends.
func clipEars(verts []Point, ring []int) []int {
	n := len(ring)
	if n < 3 {
		return nil
	}
	prev := make([]int, n)
	next := make([]int, n)
	for i := range ring {
		prev[i] = (i + n - 1) % n
		next[i] = (i + 1) % n
	}

	tris := make([]int, 0, (n-2)*3)
	cur, remaining, stalled := 0, n, 0
	for remaining > 3 {
		p, nx := prev[cur], next[cur]
		area := geom.TriangleArea(verts[ring[p]], verts[ring[cur]], verts[ring[nx]])
		switch {
		case area == 0:
			// collinear or a zero-width spike
		case isEar(verts, ring, prev, next, p, cur, nx),
			stalled >= remaining && area > 0,
			stalled >= 2*remaining:
			tris = append(tris, ring[p], ring[cur], ring[nx])
		default:
			stalled++
			cur = nx
			continue
		}
		next[p], prev[nx] = nx, p
		remaining--
		stalled = 0
		cur = nx
	}
	tris = append(tris, ring[prev[cur]], ring[cur], ring[next[cur]])
	return tris
}

func isEar(verts []Point, ring, prev, next []int, p, c, n int) bool {
	a, b, d := verts[ring[p]], verts[ring[c]], verts[ring[n]]
	if geom.TriangleArea(a, b, d) <= 0 {
		return false
	}
	for k := next[n]; k != p; k = next[k] {
		q := verts[ring[k]]
		if q.Equal(a) || q.Equal(b) || q.Equal(d) {
			continue
		}
		if inTriangle(q, a, b, d) {
			return false
		}
	}
	return true
}

func inTriangle(p, a, b, c Point) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		a.Sub(c).Cross(p.Sub(c)) >= 0
}
