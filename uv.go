package svgmesh

import "math"

// gradientPoint resolves a gradient coordinate. Percentages are relative
// to bounds, the box of the filled polygons; other units are absolute.
func gradientPoint(p LengthPoint, bounds Rect) Point {
	out := Point{X: p.X.Pixels(0), Y: p.Y.Pixels(0)}
	if p.X.IsPercent() {
		out.X = bounds.MinX + bounds.Width()*p.X.Value()/100
	}
	if p.Y.IsPercent() {
		out.Y = bounds.MinY + bounds.Height()*p.Y.Value()/100
	}
	return out
}

// FillTransform returns the matrix that maps a document point into the
// gradient frame of f, in viewport units. A linear gradient runs from its
// start at the left edge of the viewport to its end at the right edge. A
// radial or conical gradient puts its centre at the viewport centre and
// its radius at half the viewport size. Solid fills get the identity.
func FillTransform(f Fill, bounds Rect) Matrix {
	if !f.Kind.IsGradient() {
		return Identity()
	}
	vp := f.Viewport
	c := vp.Center()
	start := gradientPoint(f.Start, bounds)

	var m Matrix
	switch f.Kind {
	case FillLinearGradient:
		end := gradientPoint(f.End, bounds)
		v := end.Sub(start)
		mid := start.Lerp(end, 0.5)

		var sx, sy float64
		if mag := v.Length(); mag != 0 {
			sx, sy = vp.Width()/mag, vp.Height()/mag
		}
		m = Translate(c.X, c.Y).
			Multiply(Scale(sx, sy)).
			Multiply(Rotate(-math.Atan2(v.Y, v.X))).
			Multiply(Translate(-mid.X, -mid.Y))

	default:
		r := gradientPoint(f.End, bounds).X
		if f.End.X.IsPercent() {
			r *= 0.5
		}
		var sx, sy float64
		if r != 0 {
			sx, sy = vp.Width()/(2*r), vp.Height()/(2*r)
		}
		m = Translate(c.X, c.Y).
			Multiply(Scale(sx, sy)).
			Multiply(Translate(-start.X, -start.Y))
	}
	return m.Multiply(f.GradientTransform.Invert()).Multiply(f.Transform.Invert())
}

// gradientUV maps document points through the fill transform and
// normalises them by the viewport.
func gradientUV(f Fill, bounds Rect, pts []Point) []Vec2 {
	m := FillTransform(f, bounds)
	vp := f.Viewport
	w, h := vp.Width(), vp.Height()
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	uv := make([]Vec2, len(pts))
	for i, p := range pts {
		q := m.TransformPoint(p)
		uv[i] = Vec2{X: float32((q.X - vp.MinX) / w), Y: float32((q.Y - vp.MinY) / h)}
	}
	return uv
}

// gradientIndexUV returns n copies of (pool index, gradient type).
func gradientIndexUV(f Fill, atlas *Atlas, n int) []Vec2 {
	idx := float32(0)
	if atlas != nil {
		if g := atlas.Gradient(f.Gradient); g != nil {
			idx = float32(g.Index)
		}
	}
	v := Vec2{X: idx, Y: f.Kind.gradientType()}
	uv2 := make([]Vec2, n)
	for i := range uv2 {
		uv2[i] = v
	}
	return uv2
}

// UVTransform positions a texture over a mesh: the texture centre sits at
// Position, rotated by Rotation degrees and stretched by Scale.
type UVTransform struct {
	Position Point
	Rotation float64
	Scale    Point
}

// ApplyUVTransform recomputes uv from vertex positions. Each uv is the
// offset from Position to the vertex, rotated by -Rotation, divided by
// Scale and centred at 0.5. A zero scale axis collapses to 0.5.
func ApplyUVTransform(vertices []Vec3, t UVTransform) []Vec2 {
	var inv Point
	if t.Scale.X != 0 {
		inv.X = 1 / t.Scale.X
	}
	if t.Scale.Y != 0 {
		inv.Y = 1 / t.Scale.Y
	}
	rot := Rotate(-t.Rotation * math.Pi / 180)

	uv := make([]Vec2, len(vertices))
	for i, v := range vertices {
		d := rot.TransformVector(t.Position.Sub(v.XY()))
		uv[i] = Vec2{
			X: float32(d.X*inv.X + 0.5),
			Y: float32(d.Y*inv.Y + 0.5),
		}
	}
	return uv
}
