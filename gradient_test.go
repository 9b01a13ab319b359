package svgmesh

import "testing"

func rgbRamp(cs ...RGBA8) *Gradient {
	keys := make([]ColorKey, len(cs))
	for i, c := range cs {
		t := 0.0
		if len(cs) > 1 {
			t = float64(i) / float64(len(cs)-1)
		}
		keys[i] = ColorKey{Color: c, Time: t}
	}
	return NewGradient(keys, nil)
}

func TestGradientEvaluate(t *testing.T) {
	red, green, blue := RGB8(255, 0, 0), RGB8(0, 255, 0), RGB8(0, 0, 255)
	g := rgbRamp(red, green, blue)

	tests := []struct {
		t    float64
		want RGBA8
	}{
		{-1, red},
		{0, red},
		{0.25, RGB8(128, 128, 0)},
		{0.5, green},
		{0.75, RGB8(0, 128, 128)},
		{1, blue},
		{7, blue},
	}
	for _, tt := range tests {
		if got := g.Evaluate(tt.t); got != tt.want {
			t.Errorf("Evaluate(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestGradientEvaluateDegenerate(t *testing.T) {
	if got := NewGradient(nil, nil).Evaluate(0.3); got != Black {
		t.Errorf("no keys = %v, want black", got)
	}
	one := NewGradient([]ColorKey{{Color: RGB8(1, 2, 3), Time: 0.4}}, nil)
	for _, tt := range []float64{0, 0.4, 1} {
		if got := one.Evaluate(tt); got != RGB8(1, 2, 3) {
			t.Errorf("single key Evaluate(%v) = %v", tt, got)
		}
	}
	same := NewGradient([]ColorKey{{Color: Black, Time: 0.5}, {Color: White, Time: 0.5}}, nil)
	if got := same.Evaluate(0.2); got != Black && got != White {
		t.Errorf("coincident keys = %v", got)
	}
}

func TestGradientAlphaKeys(t *testing.T) {
	g := NewGradient(
		[]ColorKey{{Color: White, Time: 0}},
		[]AlphaKey{{Alpha: 1, Time: 1}, {Alpha: 0, Time: 0}},
	)
	if g.AlphaKeys[0].Time != 0 {
		t.Fatal("alpha keys not sorted")
	}
	if a := g.Evaluate(0.5).A; a != 128 {
		t.Errorf("alpha at 0.5 = %d, want 128", a)
	}
	if g.IsOpaque() {
		t.Error("IsOpaque() = true")
	}
	if !DefaultGradient().IsOpaque() {
		t.Error("default gradient should be opaque")
	}
}

func TestGradientHash(t *testing.T) {
	g := NewGradient(
		[]ColorKey{{Color: RGB8(0, 0, 255), Time: 1}, {Color: RGB8(255, 0, 0), Time: 0}},
		[]AlphaKey{{Alpha: 1, Time: 0}, {Alpha: 0.5, Time: 1}},
	)
	want := "GC000FF0000C9990000FFA000999A999500"
	if got := g.Hash(); got != want {
		t.Errorf("Hash() = %q, want %q", got, want)
	}

	// Colour key alpha does not take part in the hash.
	h := NewGradient(
		[]ColorKey{{Color: RGBA8{255, 0, 0, 10}, Time: 0}, {Color: RGB8(0, 0, 255), Time: 1}},
		[]AlphaKey{{Alpha: 1, Time: 0}, {Alpha: 0.5, Time: 1}},
	)
	if h.Hash() != want {
		t.Errorf("Hash() = %q, want %q", h.Hash(), want)
	}
}

func TestGradientClone(t *testing.T) {
	g := rgbRamp(Black, White)
	g.Index = 3
	c := g.Clone()
	if c.Index != -1 {
		t.Errorf("clone Index = %d, want -1", c.Index)
	}
	if c.Hash() != g.Hash() {
		t.Errorf("clone hash %q != %q", c.Hash(), g.Hash())
	}
	c.ColorKeys[0].Color = RGB8(9, 9, 9)
	if g.ColorKeys[0].Color != Black {
		t.Error("Clone shares key storage")
	}
}

func TestGradientApproxColor(t *testing.T) {
	g := rgbRamp(Black, White)
	if got := g.ApproxColor(3); got != RGB8(128, 128, 128) {
		t.Errorf("ApproxColor(3) = %v", got)
	}
	if got := g.ApproxColor(1); got != Black {
		t.Errorf("ApproxColor(1) = %v", got)
	}
}
