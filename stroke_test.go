package svgmesh

import (
	"math"
	"testing"

	"github.com/gogpu/svgmesh/internal/geom"
)

func strokeStyle(w float64) StrokeStyle {
	s := DefaultStrokeStyle()
	s.Width = Px(w)
	return s
}

func TestCreateStrokeOpenLine(t *testing.T) {
	rings := CreateStroke([][]Point{{Pt(0, 0), Pt(10, 0)}}, strokeStyle(2), CloseNever, testGraphics())
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	if a := math.Abs(geom.SignedArea(rings[0])); math.Abs(a-20) > 1e-9 {
		t.Errorf("area = %v, want 20", a)
	}
}

func TestCreateStrokeClosePolicy(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10), Pt(0, 0)}
	open := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	g := testGraphics()

	tests := []struct {
		name   string
		path   []Point
		policy ClosePolicy
		rings  int
	}{
		{"never on closed", square, CloseNever, 1},
		{"always on closed", square, CloseAlways, 2},
		{"auto on closed", square, CloseAuto, 2},
		{"auto on open", open, CloseAuto, 1},
		{"always on open", open, CloseAlways, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rings := CreateStroke([][]Point{tt.path}, strokeStyle(1), tt.policy, g)
			if len(rings) != tt.rings {
				t.Errorf("got %d rings, want %d", len(rings), tt.rings)
			}
		})
	}
}

func TestCreateStrokeZeroWidth(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN()} {
		if rings := CreateStroke([][]Point{{Pt(0, 0), Pt(1, 0)}}, strokeStyle(w), CloseNever, testGraphics()); rings != nil {
			t.Errorf("width %v: got %d rings", w, len(rings))
		}
	}
}

func TestCreateStrokeDashed(t *testing.T) {
	s := strokeStyle(1)
	s.Dash = []float64{2, 3}
	rings := CreateStroke([][]Point{{Pt(0, 0), Pt(10, 0)}}, s, CloseNever, testGraphics())
	if len(rings) != 2 {
		t.Fatalf("got %d dashes, want 2", len(rings))
	}
	var area float64
	for _, r := range rings {
		area += math.Abs(geom.SignedArea(r))
	}
	if math.Abs(area-4) > 1e-9 {
		t.Errorf("dash area = %v, want 4", area)
	}

	s.Dash = []float64{-1, 2}
	if rings := CreateStroke([][]Point{{Pt(0, 0), Pt(10, 0)}}, s, CloseNever, testGraphics()); len(rings) != 1 {
		t.Errorf("negative dash should stroke solid, got %d rings", len(rings))
	}
}

func TestScaledStroke(t *testing.T) {
	s := strokeStyle(2)
	s.Dash = []float64{1, 2}
	s.DashOffset = 1
	out := scaledStroke(s, Scale(3, 3), testGraphics())
	if out.Width.Value() != 6 || out.Dash[1] != 6 || out.DashOffset != 3 {
		t.Errorf("scaled = %+v", out)
	}
	if s.Dash[1] != 2 {
		t.Error("scaledStroke modified its input")
	}
}
