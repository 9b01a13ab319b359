package polyclip

import (
	"math"
	"sort"

	"github.com/gogpu/svgmesh/internal/geom"
)

// Point is the shared geometry point.
type Point = geom.Point

// FillRule specifies how to determine which areas are inside a set of
// contours.
type FillRule int

const (
	// NonZero fills where the winding number is not zero.
	NonZero FillRule = iota
	// EvenOdd fills where the winding number is odd.
	EvenOdd
)

// String returns the SVG name of the rule.
func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

func (r FillRule) inside(w int) bool {
	if r == EvenOdd {
		return w%2 != 0
	}
	return w != 0
}

type op int

const (
	opUnion op = iota
	opIntersect
)

const (
	setSubject = 0
	setClip    = 1
)

// gridBits bounds the snapped coordinate magnitude so that cross products
// of coordinate differences stay exact in int64 and float64.
const gridBits = 26

// minRingArea drops rings smaller than this, in squared grid units.
const minRingArea = 1.0

// Union returns the union of the contours under rule as simple polygons.
func Union(contours [][]Point, rule FillRule) []geom.Polygon {
	return run(opUnion, contours, rule, nil, NonZero)
}

// Intersect returns the area inside subject (under rule) that is also
// inside clip (under clipRule).
func Intersect(subject [][]Point, rule FillRule, clip [][]Point, clipRule FillRule) []geom.Polygon {
	if len(clip) == 0 {
		return nil
	}
	return run(opIntersect, subject, rule, clip, clipRule)
}

// Contours flattens polygons back into a contour list, outer rings first in
// each polygon.
func Contours(polys []geom.Polygon) [][]Point {
	var out [][]Point
	for _, p := range polys {
		out = append(out, p.Contours()...)
	}
	return out
}

func run(o op, subject [][]Point, rule FillRule, clip [][]Point, clipRule FillRule) []geom.Polygon {
	g := newGrid(subject, clip)

	var edges []edge
	edges = g.appendEdges(edges, subject, setSubject)
	if o == opIntersect {
		edges = g.appendEdges(edges, clip, setClip)
	}
	if len(edges) == 0 {
		return nil
	}

	edges = splitEdges(edges)
	ue := mergeEdges(edges)
	if len(ue) == 0 {
		return nil
	}

	filled := func(w [2]int) bool {
		if o == opIntersect {
			return rule.inside(w[setSubject]) && clipRule.inside(w[setClip])
		}
		return rule.inside(w[setSubject])
	}
	boundary := classify(ue, filled)
	rings := linkRings(boundary)
	return g.assemble(rings)
}

// ipt is a point on the integer grid.
type ipt struct {
	X, Y int64
}

func (p ipt) less(q ipt) bool {
	return p.X < q.X || (p.X == q.X && p.Y < q.Y)
}

func (p ipt) sub(q ipt) ipt {
	return ipt{X: p.X - q.X, Y: p.Y - q.Y}
}

func cross(a, b ipt) int64 {
	return a.X*b.Y - a.Y*b.X
}

// orient returns the sign of the turn p->q->r.
func orient(p, q, r ipt) int64 {
	return cross(q.sub(p), r.sub(p))
}

type grid struct {
	scale float64
}

func newGrid(sets ...[][]Point) grid {
	maxAbs := 0.0
	for _, set := range sets {
		for _, c := range set {
			for _, p := range c {
				if finite(p) {
					maxAbs = math.Max(maxAbs, math.Max(math.Abs(p.X), math.Abs(p.Y)))
				}
			}
		}
	}
	exp := 20
	if maxAbs > 0 {
		_, e := math.Frexp(maxAbs)
		exp = gridBits - e
		if exp > 20 {
			exp = 20
		}
	}
	return grid{scale: math.Ldexp(1, exp)}
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (g grid) snap(p Point) ipt {
	return ipt{X: int64(math.Round(p.X * g.scale)), Y: int64(math.Round(p.Y * g.scale))}
}

func (g grid) point(p ipt) Point {
	return Point{X: float64(p.X) / g.scale, Y: float64(p.Y) / g.scale}
}

// edge is a directed input segment belonging to one set.
type edge struct {
	a, b ipt
	set  int
}

func (e edge) minX() int64 { return min(e.a.X, e.b.X) }
func (e edge) maxX() int64 { return max(e.a.X, e.b.X) }
func (e edge) minY() int64 { return min(e.a.Y, e.b.Y) }
func (e edge) maxY() int64 { return max(e.a.Y, e.b.Y) }

func (g grid) appendEdges(edges []edge, contours [][]Point, set int) []edge {
	for _, c := range contours {
		ring := make([]ipt, 0, len(c))
		ok := true
		for _, p := range c {
			if !finite(p) {
				ok = false
				break
			}
			q := g.snap(p)
			if len(ring) == 0 || ring[len(ring)-1] != q {
				ring = append(ring, q)
			}
		}
		if !ok {
			continue
		}
		for len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) < 3 {
			continue
		}
		for i := range ring {
			edges = append(edges, edge{a: ring[i], b: ring[(i+1)%len(ring)], set: set})
		}
	}
	return edges
}

// splitEdges splits every edge at the points where other edges cross or
// touch it. Rounded crossing points can introduce new crossings, so the
// pass repeats a few times.
func splitEdges(edges []edge) []edge {
	for pass := 0; pass < 4; pass++ {
		splits := findSplits(edges)
		if len(splits) == 0 {
			break
		}
		next := make([]edge, 0, len(edges)+len(splits)*2)
		for i, e := range edges {
			pts, ok := splits[i]
			if !ok {
				next = append(next, e)
				continue
			}
			next = appendSplit(next, e, pts)
		}
		edges = next
	}
	return edges
}

func findSplits(edges []edge) map[int][]ipt {
	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return edges[order[i]].minX() < edges[order[j]].minX()
	})

	splits := make(map[int][]ipt)
	add := func(i int, p ipt) {
		e := edges[i]
		if p == e.a || p == e.b {
			return
		}
		splits[i] = append(splits[i], p)
	}

	for oi, i := range order {
		ei := edges[i]
		maxX := ei.maxX()
		for _, j := range order[oi+1:] {
			ej := edges[j]
			if ej.minX() > maxX {
				break
			}
			if ej.minY() > ei.maxY() || ej.maxY() < ei.minY() {
				continue
			}
			intersect(ei, ej, func(p ipt, onI, onJ bool) {
				if onI {
					add(i, p)
				}
				if onJ {
					add(j, p)
				}
			})
		}
	}
	return splits
}

// intersect reports the points where two edges meet. For each point it says
// whether it lies in the interior of the first and/or second edge.
func intersect(e, f edge, report func(p ipt, onE, onF bool)) {
	a, b, c, d := e.a, e.b, f.a, f.b
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if sign(o1)*sign(o2) < 0 && sign(o3)*sign(o4) < 0 {
		t := float64(o3) / float64(o3-o4)
		p := ipt{
			X: a.X + int64(math.Round(float64(b.X-a.X)*t)),
			Y: a.Y + int64(math.Round(float64(b.Y-a.Y)*t)),
		}
		report(p, true, true)
		return
	}

	if o1 == 0 && within(c, a, b) {
		report(c, true, false)
	}
	if o2 == 0 && within(d, a, b) {
		report(d, true, false)
	}
	if o3 == 0 && within(a, c, d) {
		report(a, false, true)
	}
	if o4 == 0 && within(b, c, d) {
		report(b, false, true)
	}
}

func sign(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// within reports whether collinear point p lies strictly inside segment ab.
func within(p, a, b ipt) bool {
	if p == a || p == b {
		return false
	}
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}

func appendSplit(out []edge, e edge, pts []ipt) []edge {
	dir := e.b.sub(e.a)
	param := func(p ipt) int64 {
		d := p.sub(e.a)
		return d.X*dir.X + d.Y*dir.Y
	}
	sort.Slice(pts, func(i, j int) bool { return param(pts[i]) < param(pts[j]) })

	prev := e.a
	for _, p := range pts {
		if p == prev {
			continue
		}
		out = append(out, edge{a: prev, b: p, set: e.set})
		prev = p
	}
	if prev != e.b {
		out = append(out, edge{a: prev, b: e.b, set: e.set})
	}
	return out
}

// uedge is a unique undirected edge with lo < hi. d holds the net number of
// lo->hi traversals per set.
type uedge struct {
	lo, hi ipt
	d      [2]int
}

func mergeEdges(edges []edge) []uedge {
	index := make(map[[2]ipt]int, len(edges))
	var out []uedge
	for _, e := range edges {
		if e.a == e.b {
			continue
		}
		lo, hi, dir := e.a, e.b, 1
		if hi.less(lo) {
			lo, hi, dir = hi, lo, -1
		}
		key := [2]ipt{lo, hi}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, uedge{lo: lo, hi: hi})
		}
		out[i].d[e.set] += dir
	}

	kept := out[:0]
	for _, u := range out {
		if u.d != [2]int{} {
			kept = append(kept, u)
		}
	}
	return kept
}

// bedge is an oriented boundary edge with the filled side on its left.
type bedge struct {
	from, to ipt
}

func classify(edges []uedge, filled func([2]int) bool) []bedge {
	var out []bedge
	for i, e := range edges {
		var lower, upper [2]int
		if e.lo.Y == e.hi.Y {
			upper = windingAbove(edges, i)
			// a rightward lo->hi edge is crossed right to left by an upward ray
			for s := range lower {
				lower[s] = upper[s] - e.d[s]
			}
			fa, fb := filled(upper), filled(lower)
			switch {
			case fa && !fb:
				out = append(out, bedge{from: e.lo, to: e.hi})
			case fb && !fa:
				out = append(out, bedge{from: e.hi, to: e.lo})
			}
			continue
		}

		// upper holds the +x side, lower the -x side.
		upper = windingRight(edges, i)
		up := e.hi.Y > e.lo.Y
		for s := range lower {
			if up {
				lower[s] = upper[s] + e.d[s]
			} else {
				lower[s] = upper[s] - e.d[s]
			}
		}
		fr, fl := filled(upper), filled(lower)
		bottom, top := e.lo, e.hi
		if !up {
			bottom, top = e.hi, e.lo
		}
		switch {
		case fl && !fr:
			out = append(out, bedge{from: bottom, to: top})
		case fr && !fl:
			out = append(out, bedge{from: top, to: bottom})
		}
	}
	return out
}

// windingRight returns the winding numbers just to the +x side of edge i,
// cast with a horizontal ray from its midpoint.
func windingRight(edges []uedge, i int) [2]int {
	e := edges[i]
	mx := float64(e.lo.X+e.hi.X) / 2
	my := float64(e.lo.Y+e.hi.Y) / 2

	var w [2]int
	for j, f := range edges {
		if j == i || f.lo.Y == f.hi.Y {
			continue
		}
		ly, hy := float64(f.lo.Y), float64(f.hi.Y)
		if (ly > my) == (hy > my) {
			continue
		}
		x := float64(f.lo.X) + (my-ly)*float64(f.hi.X-f.lo.X)/(hy-ly)
		if x <= mx {
			continue
		}
		for s := range w {
			if hy > ly {
				w[s] += f.d[s]
			} else {
				w[s] -= f.d[s]
			}
		}
	}
	return w
}

// windingAbove returns the winding numbers just above horizontal edge i,
// cast with a vertical ray from its midpoint.
func windingAbove(edges []uedge, i int) [2]int {
	e := edges[i]
	mx := float64(e.lo.X+e.hi.X) / 2
	my := float64(e.lo.Y+e.hi.Y) / 2

	var w [2]int
	for j, f := range edges {
		if j == i || f.lo.X == f.hi.X {
			continue
		}
		lx, hx := float64(f.lo.X), float64(f.hi.X)
		if (lx > mx) == (hx > mx) {
			continue
		}
		y := float64(f.lo.Y) + (mx-lx)*float64(f.hi.Y-f.lo.Y)/(hx-lx)
		if y <= my {
			continue
		}
		// non-vertical unique edges always run left to right
		for s := range w {
			w[s] -= f.d[s]
		}
	}
	return w
}

// linkRings joins boundary edges into closed rings, taking the leftmost turn
// at vertices shared by several rings.
func linkRings(edges []bedge) [][]ipt {
	out := make(map[ipt][]int, len(edges))
	for i, e := range edges {
		out[e.from] = append(out[e.from], i)
	}
	used := make([]bool, len(edges))

	var rings [][]ipt
	for start := range edges {
		if used[start] {
			continue
		}
		used[start] = true
		ring := []ipt{edges[start].from}
		cur := edges[start]
		for cur.to != edges[start].from {
			ring = append(ring, cur.to)
			next := -1
			best := math.Inf(-1)
			din := cur.to.sub(cur.from)
			for _, k := range out[cur.to] {
				if used[k] {
					continue
				}
				dout := edges[k].to.sub(edges[k].from)
				turn := math.Atan2(float64(cross(din, dout)), float64(din.X*dout.X+din.Y*dout.Y))
				if turn > best {
					best, next = turn, k
				}
			}
			if next < 0 {
				ring = nil
				break
			}
			used[next] = true
			cur = edges[next]
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// splitPinched cuts a ring at every vertex it visits more than once. Each
// loop between two visits becomes a ring of its own, so no returned ring
// repeats a vertex. Orientation is left to the caller.
func splitPinched(r []ipt) [][]ipt {
	var loops [][]ipt
	stack := make([]ipt, 0, len(r))
	at := make(map[ipt]int, len(r))
	for _, p := range r {
		i, ok := at[p]
		if !ok {
			at[p] = len(stack)
			stack = append(stack, p)
			continue
		}
		loops = append(loops, append([]ipt(nil), stack[i:]...))
		for _, q := range stack[i+1:] {
			delete(at, q)
		}
		stack = stack[:i+1]
	}
	return append(loops, stack)
}

func ringArea(r []ipt) float64 {
	var sum float64
	for i := range r {
		a, b := r[i], r[(i+1)%len(r)]
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return sum / 2
}

// dropCollinear removes vertices lying on the line through their neighbours.
func dropCollinear(r []ipt) []ipt {
	for changed := true; changed && len(r) >= 3; {
		changed = false
		out := r[:0:0]
		n := len(r)
		for i := 0; i < n; i++ {
			prev, cur, next := r[(i+n-1)%n], r[i], r[(i+1)%n]
			if orient(prev, cur, next) == 0 {
				d1, d2 := cur.sub(prev), next.sub(cur)
				if d1.X*d2.X+d1.Y*d2.Y > 0 {
					changed = true
					continue
				}
			}
			out = append(out, cur)
		}
		r = out
	}
	return r
}

func (g grid) assemble(rings [][]ipt) []geom.Polygon {
	type outer struct {
		ring []Point
		area float64
	}
	var (
		outers []outer
		holes  [][]Point
	)
	for _, linked := range rings {
		for _, r := range splitPinched(linked) {
			r = dropCollinear(r)
			if len(r) < 3 {
				continue
			}
			a := ringArea(r)
			if math.Abs(a) < minRingArea {
				continue
			}
			pts := make([]Point, len(r))
			for i, p := range r {
				pts[i] = g.point(p)
			}
			if a > 0 {
				outers = append(outers, outer{ring: pts, area: a})
			} else {
				holes = append(holes, pts)
			}
		}
	}

	polys := make([]geom.Polygon, len(outers))
	for i, o := range outers {
		polys[i].Outer = o.ring
	}
	for _, h := range holes {
		probe := h[0].Lerp(h[1], 0.5)
		best := -1
		for i, o := range outers {
			if !geom.PointInRing(probe, o.ring) {
				continue
			}
			if best < 0 || o.area < outers[best].area {
				best = i
			}
		}
		if best >= 0 {
			polys[best].Holes = append(polys[best].Holes, h)
		}
	}
	return polys
}
