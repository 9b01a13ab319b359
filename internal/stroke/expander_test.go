package stroke

import (
	"math"
	"testing"

	"github.com/gogpu/svgmesh/internal/geom"
)

func TestNewExpander(t *testing.T) {
	e := NewExpander(Style{Width: 2})
	if e.tolerance != 0.25 {
		t.Errorf("tolerance = %v, want 0.25", e.tolerance)
	}
	if e.style.MiterLimit != DefaultMiterLimit {
		t.Errorf("MiterLimit = %v, want %v", e.style.MiterLimit, DefaultMiterLimit)
	}
}

func TestExpander_SetTolerance(t *testing.T) {
	e := NewExpander(DefaultStyle())

	e.SetTolerance(0.1)
	if e.tolerance != 0.1 {
		t.Errorf("tolerance = %v, want 0.1", e.tolerance)
	}

	// Non-positive tolerance should be ignored
	e.SetTolerance(-1.0)
	e.SetTolerance(0)
	if e.tolerance != 0.1 {
		t.Error("non-positive tolerance should be ignored")
	}
}

func TestExpander_ZeroWidth(t *testing.T) {
	for _, w := range []float64{0, -1} {
		e := NewExpander(Style{Width: w})
		if got := e.Expand([]Point{{0, 0}, {10, 0}}, false); got != nil {
			t.Errorf("width %v: expected no outline, got %v", w, got)
		}
	}
}

func TestExpander_Degenerate(t *testing.T) {
	e := NewExpander(DefaultStyle())
	if got := e.Expand([]Point{{1, 1}, {1, 1}, {1, 1}}, false); got != nil {
		t.Errorf("single point contour should yield nothing, got %v", got)
	}
	if got := e.Expand(nil, true); got != nil {
		t.Errorf("empty contour should yield nothing, got %v", got)
	}
}

func TestExpander_SimpleLine(t *testing.T) {
	e := NewExpander(Style{Width: 2, Cap: LineCapButt, Join: LineJoinMiter})
	rings := e.Expand([]Point{{0, 0}, {5, 0}, {5, 0}, {10, 0}}, false)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	area := math.Abs(geom.SignedArea(rings[0]))
	if math.Abs(area-20) > 1e-9 {
		t.Errorf("area = %v, want 20", area)
	}
	b := geom.Bounds(rings[0])
	if b.MinY != -1 || b.MaxY != 1 || b.MinX != 0 || b.MaxX != 10 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestExpander_SquareCap(t *testing.T) {
	e := NewExpander(Style{Width: 2, Cap: LineCapSquare})
	rings := e.Expand([]Point{{0, 0}, {10, 0}}, false)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	b := geom.Bounds(rings[0])
	if b.MinX != -1 || b.MaxX != 11 {
		t.Errorf("square caps should extend by half width, bounds = %+v", b)
	}
	if area := math.Abs(geom.SignedArea(rings[0])); math.Abs(area-24) > 1e-9 {
		t.Errorf("area = %v, want 24", area)
	}
}

func TestExpander_RoundCap(t *testing.T) {
	e := NewExpander(Style{Width: 4, Cap: LineCapRound})
	e.SetTolerance(0.01)
	rings := e.Expand([]Point{{0, 0}, {10, 0}}, false)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	ring := rings[0]
	if len(ring) <= 4 {
		t.Fatalf("round caps should add points, got %d", len(ring))
	}
	for _, p := range ring {
		d := geom.DistanceToSegment(p, Point{0, 0}, Point{10, 0})
		if d > 2+1e-3 {
			t.Errorf("point %v is %v from the centerline, want <= 2", p, d)
		}
	}
	b := geom.Bounds(ring)
	if math.Abs(b.MinX+2) > 1e-6 || math.Abs(b.MaxX-12) > 1e-6 {
		t.Errorf("bounds = %+v, want x in [-2, 12]", b)
	}
	want := 40 + math.Pi*4
	if area := math.Abs(geom.SignedArea(ring)); math.Abs(area-want) > 0.1 {
		t.Errorf("area = %v, want about %v", area, want)
	}
}

func TestExpander_ClosedSquare(t *testing.T) {
	e := NewExpander(Style{Width: 2, Join: LineJoinMiter})
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	rings := e.Expand(square, true)
	if len(rings) != 2 {
		t.Fatalf("got %d rings, want 2", len(rings))
	}
	outer := rings[0]
	if area := math.Abs(geom.SignedArea(outer)); math.Abs(area-144) > 1e-9 {
		t.Errorf("outer area = %v, want 144", area)
	}
	b := geom.Bounds(outer)
	if b != (geom.Rect{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}) {
		t.Errorf("outer bounds = %+v", b)
	}
	if math.Signbit(geom.SignedArea(outer)) == math.Signbit(geom.SignedArea(rings[1])) {
		t.Error("outer and inner rings should have opposite orientation")
	}
}

func TestExpander_MiterLimitFallsBackToBevel(t *testing.T) {
	sharp := []Point{{0, 0}, {10, 0}, {0, 1}}
	e := NewExpander(Style{Width: 2, Join: LineJoinMiter, MiterLimit: 1})
	rings := e.Expand(sharp, false)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	for _, p := range rings[0] {
		if p.Distance(Point{10, 0}) > 1+1e-9 && p.X > 10 {
			t.Errorf("bevel should not reach beyond the joint, got %v", p)
		}
	}
}

func TestExpander_MiterClip(t *testing.T) {
	sharp := []Point{{0, 0}, {10, 0}, {0, 2}}
	limit := 2.0
	joint := Point{10, 0}

	miter := NewExpander(Style{Width: 2, Join: LineJoinMiter, MiterLimit: limit}).Expand(sharp, false)
	clip := NewExpander(Style{Width: 2, Join: LineJoinMiterClip, MiterLimit: limit}).Expand(sharp, false)
	if len(miter) != 1 || len(clip) != 1 {
		t.Fatalf("expected one ring each, got %d and %d", len(miter), len(clip))
	}

	// outer bisector of the turn
	u := sharp[1].Sub(sharp[0]).Normalize().Sub(sharp[2].Sub(sharp[1]).Normalize()).Normalize()
	reach := func(ring []Point) float64 {
		d := 0.0
		for _, p := range ring {
			d = math.Max(d, p.Sub(joint).Dot(u))
		}
		return d
	}
	if d := reach(clip[0]); d > limit+1e-6 || d <= 1 {
		t.Errorf("clipped miter reaches %v along the bisector, want in (1, %v]", d, limit)
	}
	if d := reach(miter[0]); d > 1+1e-6 {
		t.Errorf("plain miter past its limit should bevel, reaches %v", d)
	}
	if len(clip[0]) <= len(miter[0]) {
		t.Errorf("clipped miter should add corner points: %d vs %d", len(clip[0]), len(miter[0]))
	}
}

func TestExpander_RoundJoinStaysWithinRadius(t *testing.T) {
	e := NewExpander(Style{Width: 2, Join: LineJoinRound})
	e.SetTolerance(0.01)
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}
	rings := e.Expand(pts, false)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	for _, p := range rings[0] {
		d := math.Min(
			geom.DistanceToSegment(p, pts[0], pts[1]),
			geom.DistanceToSegment(p, pts[1], pts[2]),
		)
		if d > 1+1e-3 {
			t.Errorf("point %v is %v from the polyline, want <= 1", p, d)
		}
	}
}

func TestExpandAll(t *testing.T) {
	e := NewExpander(Style{Width: 1})
	rings := e.ExpandAll([][]Point{
		{{0, 0}, {10, 0}},
		{{0, 5}, {10, 5}},
		{{3, 3}},
	}, false)
	if len(rings) != 2 {
		t.Errorf("got %d rings, want 2", len(rings))
	}
}
