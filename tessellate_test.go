package svgmesh

import (
	"math"
	"testing"

	"github.com/gogpu/svgmesh/internal/geom"
)

func meshArea(verts []Point, idx []uint32) float64 {
	var a float64
	for i := 0; i+2 < len(idx); i += 3 {
		a += geom.TriangleArea(verts[idx[i]], verts[idx[i+1]], verts[idx[i+2]])
	}
	return a
}

func TestTessellate(t *testing.T) {
	lshape := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 4), Pt(4, 4), Pt(4, 10), Pt(0, 10)}

	tests := []struct {
		name  string
		polys []Polygon
		area  float64
	}{
		{"empty", nil, 0},
		{"square", ResolveFill([][]Point{square(0, 0, 10)}, FillRuleNonZero, nil), 100},
		{"concave", []Polygon{{Outer: lshape}}, 64},
		{"with hole", ResolveFill([][]Point{square(0, 0, 10), square(2, 2, 6)}, FillRuleEvenOdd, nil), 64},
		{"zero area", []Polygon{{Outer: []Point{Pt(0, 0), Pt(5, 0), Pt(10, 0)}}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts, idx := Tessellate(tt.polys)
			if len(idx)%3 != 0 {
				t.Fatalf("index count %d is not a multiple of 3", len(idx))
			}
			for _, i := range idx {
				if int(i) >= len(verts) {
					t.Fatalf("index %d out of range", i)
				}
			}
			for i := 0; i+2 < len(idx); i += 3 {
				if geom.TriangleArea(verts[idx[i]], verts[idx[i+1]], verts[idx[i+2]]) <= 0 {
					t.Errorf("triangle %d is not counter-clockwise", i/3)
				}
			}
			if got := meshArea(verts, idx); math.Abs(got-tt.area) > 1e-6 {
				t.Errorf("area = %v, want %v", got, tt.area)
			}
		})
	}
}
