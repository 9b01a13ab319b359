package svgmesh

import (
	"math"
	"testing"
)

func pointsClose(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestIsTranslation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"pure translation", Translate(10, 20), true},
		{"negative translation", Translate(-5, -3), true},
		{"uniform scale", Scale(2, 2), false},
		{"scale 1,1", Scale(1, 1), true},
		{"rotation 90deg", Rotate(math.Pi / 2), false},
		{"shear x", Shear(0.5, 0), false},
		{"zero matrix", Matrix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslation(); got != tt.want {
				t.Errorf("Matrix%+v.IsTranslation() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestMultiplyOrder(t *testing.T) {
	// translate after scale
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if !pointsClose(got, Pt(12, 2), 1e-12) {
		t.Errorf("TransformPoint = %v, want (12,2)", got)
	}
}

func TestFromSVGRoundTrip(t *testing.T) {
	m := FromSVG(1, 2, 3, 4, 5, 6)
	// x' = a*x + c*y + e, y' = b*x + d*y + f
	got := m.TransformPoint(Pt(1, 1))
	if !pointsClose(got, Pt(1+3+5, 2+4+6), 1e-12) {
		t.Errorf("TransformPoint = %v", got)
	}
	if s := m.SVG(); s != [6]float64{1, 2, 3, 4, 5, 6} {
		t.Errorf("SVG() = %v", s)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"translate", Translate(3, -4)},
		{"scale", Scale(2, 0.5)},
		{"rotate", Rotate(0.7)},
		{"composite", Translate(5, 1).Multiply(Rotate(1.1)).Multiply(Scale(3, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pt(1.5, -2.5)
			back := tt.m.Invert().TransformPoint(tt.m.TransformPoint(p))
			if !pointsClose(back, p, 1e-9) {
				t.Errorf("round trip = %v, want %v", back, p)
			}
		})
	}

	if !(Matrix{}).Invert().IsIdentity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestRotateAbout(t *testing.T) {
	m := RotateAbout(math.Pi/2, 1, 1)
	got := m.TransformPoint(Pt(2, 1))
	if !pointsClose(got, Pt(1, 2), 1e-12) {
		t.Errorf("TransformPoint = %v, want (1,2)", got)
	}
}

func TestSkew(t *testing.T) {
	got := SkewX(math.Pi / 4).TransformPoint(Pt(0, 1))
	if !pointsClose(got, Pt(1, 1), 1e-12) {
		t.Errorf("SkewX = %v", got)
	}
	got = SkewY(math.Pi / 4).TransformPoint(Pt(1, 0))
	if !pointsClose(got, Pt(1, 1), 1e-12) {
		t.Errorf("SkewY = %v", got)
	}
}

func TestScaleFactor(t *testing.T) {
	if got := Scale(2, 8).ScaleFactor(); math.Abs(got-4) > 1e-12 {
		t.Errorf("ScaleFactor = %g, want 4", got)
	}
	if got := Rotate(1).ScaleFactor(); math.Abs(got-1) > 1e-12 {
		t.Errorf("ScaleFactor = %g, want 1", got)
	}
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	got := Translate(100, 100).TransformVector(Pt(1, 2))
	if got != Pt(1, 2) {
		t.Errorf("TransformVector = %v", got)
	}
}

func TestTransformPoints(t *testing.T) {
	pts := []Point{Pt(1, 2), Pt(-3, 4)}
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translation", Translate(5, -1)},
		{"rotation", Rotate(0.3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoints(pts)
			if len(got) != len(pts) {
				t.Fatalf("got %d points", len(got))
			}
			if &got[0] == &pts[0] {
				t.Error("result shares the input slice")
			}
			for i, p := range pts {
				if want := tt.m.TransformPoint(p); !pointsClose(got[i], want, 1e-12) {
					t.Errorf("point %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}
