package svgmesh

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/svgmesh/internal/geom"
)

func square(x, y, size float64) []Point {
	return []Point{Pt(x, y), Pt(x+size, y), Pt(x+size, y+size), Pt(x, y+size), Pt(x, y)}
}

func TestResolveFillRules(t *testing.T) {
	outer := square(0, 0, 10)
	inner := square(2, 2, 6)

	tests := []struct {
		name     string
		contours [][]Point
		rule     FillRule
		area     float64
		holes    int
	}{
		{"single", [][]Point{outer}, FillRuleNonZero, 100, 0},
		{"same direction nonzero", [][]Point{outer, inner}, FillRuleNonZero, 100, 0},
		{"same direction evenodd", [][]Point{outer, inner}, FillRuleEvenOdd, 64, 1},
		{"reversed nonzero", [][]Point{outer, geom.Reverse(append([]Point(nil), inner...))}, FillRuleNonZero, 64, 1},
		{"overlapping union", [][]Point{square(0, 0, 10), square(5, 0, 10)}, FillRuleNonZero, 150, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polys := ResolveFill(tt.contours, tt.rule, nil)
			if got := polygonsArea(polys); math.Abs(got-tt.area) > 1e-6 {
				t.Errorf("area = %v, want %v", got, tt.area)
			}
			holes := 0
			for _, p := range polys {
				if geom.SignedArea(p.Outer) <= 0 {
					t.Errorf("outer ring is not counter-clockwise")
				}
				for _, h := range p.Holes {
					if geom.SignedArea(h) >= 0 {
						t.Errorf("hole is not clockwise")
					}
				}
				holes += len(p.Holes)
			}
			if holes != tt.holes {
				t.Errorf("holes = %d, want %d", holes, tt.holes)
			}
		})
	}
}

func TestResolveFillClip(t *testing.T) {
	polys := ResolveFill([][]Point{square(0, 0, 10)}, FillRuleNonZero, [][]Point{square(5, 5, 10)})
	if got := polygonsArea(polys); math.Abs(got-25) > 1e-6 {
		t.Errorf("clipped area = %v, want 25", got)
	}

	polys = ResolveFill([][]Point{square(0, 0, 10)}, FillRuleNonZero, [][]Point{square(20, 20, 5)})
	if len(polys) != 0 {
		t.Errorf("disjoint clip should leave nothing, got %d polygons", len(polys))
	}
}

func TestResolveFillDegenerate(t *testing.T) {
	cases := map[string][][]Point{
		"nil":       nil,
		"point":     {{Pt(1, 1)}},
		"line":      {{Pt(0, 0), Pt(10, 0), Pt(0, 0)}},
		"collinear": {{Pt(0, 0), Pt(5, 0), Pt(10, 0)}},
		"nan":       {{Pt(0, 0), Pt(math.NaN(), 1), Pt(1, 1)}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if polys := ResolveFill(c, FillRuleEvenOdd, nil); polygonsArea(polys) != 0 {
				t.Errorf("expected no area, got %v", polygonsArea(polys))
			}
		})
	}
}

func TestMerge(t *testing.T) {
	polys := Merge([][]Point{square(0, 0, 4), square(2, 0, 4), square(10, 10, 1)})
	if len(polys) != 2 {
		t.Fatalf("got %d polygons, want 2", len(polys))
	}
	if got := polygonsArea(polys); math.Abs(got-25) > 1e-6 {
		t.Errorf("area = %v, want 25", got)
	}
	if n := len(PolygonContours(polys)); n != 2 {
		t.Errorf("contours = %d, want 2", n)
	}
}

func checkFillTessellation(t *testing.T, contours [][]Point, rule FillRule) {
	t.Helper()
	polys := ResolveFill(contours, rule, nil)
	for _, p := range polys {
		for _, ring := range p.Contours() {
			seen := make(map[Point]bool, len(ring))
			for _, v := range ring {
				if seen[v] {
					t.Fatalf("ring of %d points repeats vertex %v", len(ring), v)
				}
				seen[v] = true
			}
		}
	}
	want := polygonsArea(polys)
	vertices, indices := Tessellate(polys)
	if got := meshArea(vertices, indices); math.Abs(got-want) > 1e-6*math.Max(1, want) {
		t.Errorf("triangles cover %v, polygons enclose %v", got, want)
	}
}

func TestResolveFillThenTessellateOverlappingSubpaths(t *testing.T) {
	contours := [][]Point{
		{Pt(34, 41), Pt(23, 75), Pt(79, 50), Pt(7, 3), Pt(17, 39), Pt(16, 67)},
		{Pt(25, 28), Pt(17, 39), Pt(51, 73), Pt(28, 26), Pt(22, 32)},
		{Pt(24, 32), Pt(87, 90), Pt(56, 89), Pt(52, 33)},
	}
	checkFillTessellation(t, contours, FillRuleEvenOdd)
	checkFillTessellation(t, contours, FillRuleNonZero)
}

func TestResolveFillThenTessellateRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		contours := make([][]Point, 1+rng.IntN(3))
		for c := range contours {
			ring := make([]Point, 3+rng.IntN(4))
			for k := range ring {
				ring[k] = Pt(float64(rng.IntN(100)), float64(rng.IntN(100)))
			}
			contours[c] = ring
		}
		rule := FillRuleNonZero
		if i%2 == 1 {
			rule = FillRuleEvenOdd
		}
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			checkFillTessellation(t, contours, rule)
		})
	}
}
