package svgmesh

import (
	"github.com/gogpu/svgmesh/internal/polyclip"
	"github.com/gogpu/svgmesh/internal/stroke"
)

// LineCap specifies the shape of line endpoints.
type LineCap = stroke.LineCap

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt = stroke.LineCapButt
	// LineCapRound specifies a rounded line cap.
	LineCapRound = stroke.LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare = stroke.LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin = stroke.LineJoin

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter = stroke.LineJoinMiter
	// LineJoinMiterClip specifies a miter clipped at the miter limit.
	LineJoinMiterClip = stroke.LineJoinMiterClip
	// LineJoinRound specifies a rounded join.
	LineJoinRound = stroke.LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel = stroke.LineJoinBevel
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns the SVG keyword.
func (r FillRule) String() string {
	return r.clipRule().String()
}

func (r FillRule) clipRule() polyclip.FillRule {
	if r == FillRuleEvenOdd {
		return polyclip.EvenOdd
	}
	return polyclip.NonZero
}

// FillKind selects how a fill is coloured.
type FillKind int

const (
	FillSolid FillKind = iota
	FillLinearGradient
	FillRadialGradient
	FillConicalGradient
)

var fillKindNames = [...]string{"solid", "linear", "radial", "conical"}

// String returns a short name for the kind.
func (k FillKind) String() string {
	if k < 0 || int(k) >= len(fillKindNames) {
		return "unknown"
	}
	return fillKindNames[k]
}

// IsGradient reports whether the kind samples the gradient atlas.
func (k FillKind) IsGradient() bool {
	return k != FillSolid
}

// gradientType is the value written to uv2.y.
func (k FillKind) gradientType() float32 {
	switch k {
	case FillRadialGradient:
		return 1
	case FillConicalGradient:
		return 2
	}
	return 0
}

// Blend is the blending mode of a fill.
type Blend int

const (
	BlendOpaque Blend = iota
	BlendAlphaBlended
	BlendAdditive
	BlendMultiply
)

var blendNames = [...]string{"opaque", "alpha", "additive", "multiply"}

// String returns a short name for the blend mode.
func (b Blend) String() string {
	if b < 0 || int(b) >= len(blendNames) {
		return "unknown"
	}
	return blendNames[b]
}

// blendFor returns Opaque for a fully opaque colour, otherwise AlphaBlended.
func blendFor(c RGBA8) Blend {
	if c.IsOpaque() {
		return BlendOpaque
	}
	return BlendAlphaBlended
}

// StrokeStyle describes stroke geometry. Width is resolved against the
// viewport diagonal when given as a percentage.
type StrokeStyle struct {
	Width      Length
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// DefaultStrokeStyle returns a 1px butt/miter style.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      Px(1),
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: stroke.DefaultMiterLimit,
	}
}

// LengthPoint is a pair of unresolved lengths.
type LengthPoint struct {
	X, Y Length
}

// GradientStop is a colour at an offset in percent (0..100). Stop opacity
// is carried in the colour's alpha.
type GradientStop struct {
	Offset float64
	Color  RGBA8
}

// GradientDef is a gradient paint server as found in the document.
//
// For linear gradients Start and End are the gradient vector. For radial
// and conical gradients Start is the centre and End.X the radius.
// Percentages resolve against the bounds of the filled area.
type GradientDef struct {
	Kind      FillKind
	Stops     []GradientStop
	Start     LengthPoint
	End       LengthPoint
	Transform *TransformList
}

// Brush is a fill or stroke paint: nothing, a flat colour or a gradient.
type Brush struct {
	None     bool
	Color    RGBA8
	Gradient *GradientDef
}

// SolidBrush returns a flat colour brush.
func SolidBrush(c RGBA8) *Brush {
	return &Brush{Color: c}
}

// NoBrush returns the "none" brush.
func NoBrush() *Brush {
	return &Brush{None: true}
}

// Paint is the presentation of a shape.
type Paint struct {
	// Fill is nil for the default black fill.
	Fill *Brush
	// Stroke is nil for no stroke.
	Stroke *Brush

	Opacity       float64
	FillOpacity   float64
	StrokeOpacity float64
	FillRule      FillRule
	StrokeStyle   StrokeStyle

	// Clip holds clip contours in document space. Empty means unclipped.
	Clip [][]Point
}

// DefaultPaint returns the initial SVG presentation: black fill, no stroke,
// full opacity.
func DefaultPaint() Paint {
	return Paint{
		Opacity:       1,
		FillOpacity:   1,
		StrokeOpacity: 1,
		StrokeStyle:   DefaultStrokeStyle(),
	}
}

// HasFill reports whether the fill brush paints anything.
func (p Paint) HasFill() bool {
	return p.Fill == nil || !p.Fill.None
}

// HasStroke reports whether the stroke brush paints anything.
func (p Paint) HasStroke() bool {
	return p.Stroke != nil && !p.Stroke.None
}

// StrokeColor resolves the flat colour of the stroke. Alpha is scaled by
// stroke opacity and opacity. A gradient stroke uses the ramp's average.
func (p Paint) StrokeColor() Fill {
	c := Black
	if p.Stroke != nil {
		c = p.Stroke.Color
		if p.Stroke.Gradient != nil {
			c = gradientFromStops(p.Stroke.Gradient.Stops).ApproxColor(8)
		}
	}
	c = c.ScaleAlpha(p.StrokeOpacity * p.Opacity)
	return Fill{
		Kind:              FillSolid,
		Blend:             blendFor(c),
		Color:             c,
		Gradient:          NoGradient,
		GradientTransform: Identity(),
		Transform:         Identity(),
	}
}

// Fill is a resolved fill, ready to colour a fragment.
type Fill struct {
	Kind     FillKind
	Blend    Blend
	Color    RGBA8
	Gradient GradientHandle

	// Gradient placement.
	Start             LengthPoint
	End               LengthPoint
	GradientTransform Matrix
	Transform         Matrix
	Viewport          Rect
}

// IsGradient reports whether the fill samples the atlas.
func (f Fill) IsGradient() bool {
	return f.Kind.IsGradient() && f.Gradient != NoGradient
}

// SolidFill returns an opaque-or-blended flat fill of c.
func SolidFill(c RGBA8) Fill {
	return Fill{
		Kind:              FillSolid,
		Blend:             blendFor(c),
		Color:             c,
		Gradient:          NoGradient,
		GradientTransform: Identity(),
		Transform:         Identity(),
	}
}

// resolveFill turns the fill brush into a Fill. Gradient brushes register
// their ramp with the atlas. The shape transform and viewport are recorded
// for gradient UVs.
func (p Paint) resolveFill(atlas *Atlas, shape Matrix, viewport Rect) Fill {
	if p.Fill != nil && p.Fill.Gradient != nil && atlas != nil {
		f := FillFromGradient(atlas, p.Fill.Gradient, p.FillOpacity)
		f.Transform = shape
		f.Viewport = viewport
		return f
	}

	c := Black
	if p.Fill != nil {
		c = p.Fill.Color
	}
	f := SolidFill(c.ScaleAlpha(p.FillOpacity))
	f.Transform = shape
	f.Viewport = viewport
	return f
}

// FillFromGradient builds a gradient fill and adds its ramp to the atlas.
// The vertex colour is white so the ramp shows unmodified; fill opacity
// goes into its alpha.
func FillFromGradient(atlas *Atlas, def *GradientDef, fillOpacity float64) Fill {
	g := gradientFromStops(def.Stops)
	h, _ := atlas.AddGradient(g)

	c := White.ScaleAlpha(fillOpacity)
	blend := blendFor(c)
	if !g.IsOpaque() {
		blend = BlendAlphaBlended
	}
	kind := def.Kind
	if kind == FillSolid {
		kind = FillLinearGradient
	}
	return Fill{
		Kind:              kind,
		Blend:             blend,
		Color:             c,
		Gradient:          h,
		Start:             def.Start,
		End:               def.End,
		GradientTransform: def.Transform.Matrix(),
		Transform:         Identity(),
	}
}

// gradientFromStops normalises stops into keys. The first stop is moved to
// offset 0, offsets must increase (an equal offset replaces the previous
// colour), and the last colour is repeated at 100 if needed.
func gradientFromStops(stops []GradientStop) *Gradient {
	type stop struct {
		offset float64
		color  RGBA8
	}
	var list []stop
	for i, s := range stops {
		if i == 0 {
			list = append(list, stop{0, s.Color})
			continue
		}
		last := &list[len(list)-1]
		switch {
		case s.Offset == last.offset:
			last.color = s.Color
		case s.Offset > last.offset && s.Offset <= 100:
			list = append(list, stop{s.Offset, s.Color})
		}
	}
	if n := len(list); n > 0 && list[n-1].offset != 100 {
		list = append(list, stop{100, list[n-1].color})
	}

	colors := make([]ColorKey, len(list))
	alphas := make([]AlphaKey, len(list))
	for i, s := range list {
		t := clamp01(s.offset * 0.01)
		colors[i] = ColorKey{Color: s.color, Time: t}
		alphas[i] = AlphaKey{Alpha: s.color.Alpha(), Time: t}
	}
	return NewGradient(colors, alphas)
}

// SolidPaint returns the default paint with a flat fill of c.
func SolidPaint(c RGBA8) Paint {
	p := DefaultPaint()
	p.Fill = SolidBrush(c)
	return p
}
