package svgmesh

import (
	"errors"
	"testing"
)

func TestTransformListEmptyIsIdentity(t *testing.T) {
	var nilList *TransformList
	if !nilList.Matrix().IsIdentity() {
		t.Error("nil list should be identity")
	}
	if !NewTransformList().Matrix().IsIdentity() {
		t.Error("empty list should be identity")
	}
	var zero Transform
	if !zero.Matrix().IsIdentity() {
		t.Error("zero Transform should be identity")
	}
}

func TestTransformListComposite(t *testing.T) {
	l := NewTransformList(TranslateTransform(10, 0), ScaleTransform(2, 2))
	got := l.Matrix().TransformPoint(Pt(1, 1))
	if !pointsClose(got, Pt(12, 2), 1e-12) {
		t.Errorf("composite(1,1) = %v, want (12,2)", got)
	}
}

func TestTransformListInvalidation(t *testing.T) {
	l := NewTransformList(TranslateTransform(1, 0))
	_ = l.Matrix()

	l.Append(TranslateTransform(0, 5))
	if got := l.Matrix().TransformPoint(Pt(0, 0)); !pointsClose(got, Pt(1, 5), 1e-12) {
		t.Errorf("after Append = %v", got)
	}

	l.Insert(0, ScaleTransform(3, 3))
	if l.Len() != 3 || l.At(0).Kind != TransformScale {
		t.Fatalf("Insert(0) produced %d entries, first %v", l.Len(), l.At(0).Kind)
	}
	if got := l.Matrix().TransformPoint(Pt(0, 0)); !pointsClose(got, Pt(3, 15), 1e-12) {
		t.Errorf("after Insert = %v", got)
	}

	l.Insert(1, TranslateTransform(100, 0))
	if l.At(1).Kind != TransformTranslate || l.At(2).Args()[0] != 1 {
		t.Errorf("Insert(1) order wrong: %v %v", l.At(1), l.At(2))
	}

	l.Clear()
	if l.Len() != 0 || !l.Matrix().IsIdentity() {
		t.Error("Clear should reset to identity")
	}

	l.AppendList(NewTransformList(TranslateTransform(2, 2)))
	if got := l.Matrix().TransformPoint(Pt(0, 0)); !pointsClose(got, Pt(2, 2), 1e-12) {
		t.Errorf("after AppendList = %v", got)
	}
}

func TestTransformListAtPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("At out of range should panic")
		}
	}()
	NewTransformList().At(0)
}

func TestTransformListConsolidate(t *testing.T) {
	l := NewTransformList(TranslateTransform(5, 5), RotateTransform(90, 0, 0), ScaleTransform(2, 1))
	want := l.Matrix()
	c := l.Consolidate()
	if c.Kind != TransformMatrix || l.Len() != 1 {
		t.Fatalf("Consolidate: kind %v len %d", c.Kind, l.Len())
	}
	p := Pt(1, 2)
	if !pointsClose(l.Matrix().TransformPoint(p), want.TransformPoint(p), 1e-9) {
		t.Error("Consolidate changed the composite")
	}
}

func TestParseTransformList(t *testing.T) {
	tests := []struct {
		in   string
		kind []TransformKind
		p    Point
		want Point
	}{
		{"translate(10 20)", []TransformKind{TransformTranslate}, Pt(0, 0), Pt(10, 20)},
		{"translate(10)", []TransformKind{TransformTranslate}, Pt(0, 0), Pt(10, 0)},
		{"scale(2)", []TransformKind{TransformScale}, Pt(1, 3), Pt(2, 6)},
		{"rotate(90)", []TransformKind{TransformRotate}, Pt(1, 0), Pt(0, 1)},
		{"rotate(180, 5, 5)", []TransformKind{TransformRotate}, Pt(0, 0), Pt(10, 10)},
		{"matrix(1,0,0,1,3,4)", []TransformKind{TransformMatrix}, Pt(1, 1), Pt(4, 5)},
		{"skewX(45)", []TransformKind{TransformSkewX}, Pt(0, 1), Pt(1, 1)},
		{"skewY(45)", []TransformKind{TransformSkewY}, Pt(1, 0), Pt(1, 1)},
		{" translate(1,0) , scale(2,3) ", []TransformKind{TransformTranslate, TransformScale}, Pt(1, 1), Pt(3, 3)},
		{"translate(-1e1,.5)", []TransformKind{TransformTranslate}, Pt(0, 0), Pt(-10, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := ParseTransformList(tt.in)
			if err != nil {
				t.Fatalf("ParseTransformList(%q) error: %v", tt.in, err)
			}
			if l.Len() != len(tt.kind) {
				t.Fatalf("len = %d, want %d", l.Len(), len(tt.kind))
			}
			for i, k := range tt.kind {
				if l.At(i).Kind != k {
					t.Errorf("entry %d kind = %v, want %v", i, l.At(i).Kind, k)
				}
			}
			if got := l.Matrix().TransformPoint(tt.p); !pointsClose(got, tt.want, 1e-9) {
				t.Errorf("Matrix(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestParseTransformListMalformed(t *testing.T) {
	tests := []struct {
		in   string
		kept int
	}{
		{"rotate(1,2)", 0},
		{"wobble(3) translate(1,2)", 1},
		{"scale(a) translate(1,2)", 1},
		{"matrix(1 2 3)", 0},
		{"translate(1,2", 0},
		{"(1,2)", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := ParseTransformList(tt.in)
			if !errors.Is(err, ErrMalformedTransform) {
				t.Errorf("error = %v, want ErrMalformedTransform", err)
			}
			if l.Len() != tt.kept {
				t.Errorf("kept %d entries, want %d", l.Len(), tt.kept)
			}
		})
	}
}

func TestTransformString(t *testing.T) {
	if s := RotateTransform(45, 1, 2).String(); s != "rotate(45 1 2)" {
		t.Errorf("String() = %q", s)
	}
	if s := TransformSkewY.String(); s != "skewY" {
		t.Errorf("kind String() = %q", s)
	}
}
