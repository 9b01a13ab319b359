package svgmesh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// clipSpacing is the segment length used to flatten clip paths, in
// document units.
const clipSpacing = 1.0

// ReadDocument decodes a YAML document description. The format mirrors
// SVG attribute names:
//
//	viewport: [0, 0, 100, 100]
//	shapes:
//	  - name: dot
//	    circle: {cx: 50, cy: 50, r: 10%}
//	    transform: rotate(45, 50, 50)
//	    fill: "#f80"
//	    stroke: navy
//	    stroke-width: 2
//
// Geometry is one of circle, ellipse, rect, line, polyline, polygon or
// path. A fill may also be a gradient mapping with kind, start, end,
// transform and stops.
//
// Only YAML syntax errors are returned. Malformed attribute text is
// recorded in Document.Errors and the attribute falls back to its
// default, so an import still renders the rest of the document.
func ReadDocument(r io.Reader) (Document, error) {
	var f docFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("svgmesh: read document: %w", err)
	}
	return f.document(), nil
}

// ParseDocument is ReadDocument on a byte slice.
func ParseDocument(data []byte) (Document, error) {
	return ReadDocument(bytes.NewReader(data))
}

type docFile struct {
	Viewport []float64  `yaml:"viewport"`
	Shapes   []docShape `yaml:"shapes"`
}

// docText is any scalar kept as its source text, so numbers and lengths
// with units decode the same way.
type docText string

func (t *docText) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	*t = docText(n.Value)
	return nil
}

type docShape struct {
	Name      string `yaml:"name"`
	Hidden    bool   `yaml:"hidden"`
	Display   string `yaml:"display"`
	Transform string `yaml:"transform"`

	Circle   *docCircle  `yaml:"circle"`
	Ellipse  *docEllipse `yaml:"ellipse"`
	Rect     *docRect    `yaml:"rect"`
	Line     *docLine    `yaml:"line"`
	Polyline *string     `yaml:"polyline"`
	Polygon  *string     `yaml:"polygon"`
	Path     *string     `yaml:"path"`

	Fill             *docBrush `yaml:"fill"`
	Stroke           *docBrush `yaml:"stroke"`
	StrokeWidth      docText   `yaml:"stroke-width"`
	StrokeLinecap    string    `yaml:"stroke-linecap"`
	StrokeLinejoin   string    `yaml:"stroke-linejoin"`
	StrokeMiterlimit *float64  `yaml:"stroke-miterlimit"`
	StrokeDasharray  []float64 `yaml:"stroke-dasharray"`
	StrokeDashoffset float64   `yaml:"stroke-dashoffset"`
	Opacity          *float64  `yaml:"opacity"`
	FillOpacity      *float64  `yaml:"fill-opacity"`
	StrokeOpacity    *float64  `yaml:"stroke-opacity"`
	FillRule         string    `yaml:"fill-rule"`
	Clip             []string  `yaml:"clip"`
}

type docCircle struct {
	CX docText `yaml:"cx"`
	CY docText `yaml:"cy"`
	R  docText `yaml:"r"`
}

type docEllipse struct {
	CX docText `yaml:"cx"`
	CY docText `yaml:"cy"`
	RX docText `yaml:"rx"`
	RY docText `yaml:"ry"`
}

type docLine struct {
	X1 docText `yaml:"x1"`
	Y1 docText `yaml:"y1"`
	X2 docText `yaml:"x2"`
	Y2 docText `yaml:"y2"`
}

type docRect struct {
	X      docText `yaml:"x"`
	Y      docText `yaml:"y"`
	Width  docText `yaml:"width"`
	Height docText `yaml:"height"`
	RX     docText `yaml:"rx"`
	RY     docText `yaml:"ry"`
}

// docBrush is either a colour scalar or a gradient mapping.
type docBrush struct {
	Color    string
	Gradient *docGradient
}

type docGradient struct {
	Kind      string    `yaml:"kind"`
	Start     []docText `yaml:"start"`
	End       []docText `yaml:"end"`
	Transform string    `yaml:"transform"`
	Stops     []struct {
		Offset  float64  `yaml:"offset"`
		Color   string   `yaml:"color"`
		Opacity *float64 `yaml:"opacity"`
	} `yaml:"stops"`
}

func (b *docBrush) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		b.Color = n.Value
		return nil
	}
	b.Gradient = new(docGradient)
	return n.Decode(b.Gradient)
}

func (f *docFile) document() Document {
	var doc Document
	if len(f.Viewport) == 4 {
		doc.Viewport = RectXYWH(f.Viewport[0], f.Viewport[1], f.Viewport[2], f.Viewport[3])
	} else if f.Viewport != nil {
		doc.Errors = append(doc.Errors, fmt.Errorf("%w: viewport needs 4 numbers, got %d", ErrMalformedLength, len(f.Viewport)))
	}

	for i := range f.Shapes {
		ds := &f.Shapes[i]
		name := ds.Name
		if name == "" {
			name = fmt.Sprintf("shape%d", i)
		}
		b := shapeBuilder{name: name}
		if sh, ok := b.build(ds); ok {
			doc.Shapes = append(doc.Shapes, sh)
		}
		doc.Errors = append(doc.Errors, b.errs...)
	}
	return doc
}

// shapeBuilder converts one YAML shape, collecting attribute errors.
type shapeBuilder struct {
	name string
	errs []error
}

func (b *shapeBuilder) fail(attr string, err error) {
	b.errs = append(b.errs, &ImportError{Shape: b.name, Err: fmt.Errorf("%s: %w", attr, err)})
}

func (b *shapeBuilder) length(attr string, t docText) Length {
	if t == "" {
		return Length{}
	}
	l, err := ParseLength(string(t))
	if err != nil {
		b.fail(attr, err)
		return Length{}
	}
	return l
}

func (b *shapeBuilder) color(attr, text string) RGBA8 {
	c, err := ParseColor(text)
	if err != nil {
		b.fail(attr, err)
	}
	return c
}

func (b *shapeBuilder) build(ds *docShape) (Shape, bool) {
	sh := Shape{
		Name:        ds.Name,
		Hidden:      ds.Hidden,
		DisplayNone: cases.Fold().String(ds.Display) == "none",
		Paint:       DefaultPaint(),
	}

	sh.Geometry = b.geometry(ds)
	if sh.Geometry == nil {
		return Shape{}, false
	}
	if ds.Transform != "" {
		// a partial list still applies
		l, err := ParseTransformList(ds.Transform)
		if err != nil {
			b.fail("transform", err)
		}
		sh.Transform = l
	}
	b.paint(ds, &sh.Paint)
	return sh, true
}

func (b *shapeBuilder) geometry(ds *docShape) Geometry {
	var geos []Geometry
	if c := ds.Circle; c != nil {
		geos = append(geos, Circle{CX: b.length("cx", c.CX), CY: b.length("cy", c.CY), R: b.length("r", c.R)})
	}
	if e := ds.Ellipse; e != nil {
		geos = append(geos, Ellipse{
			CX: b.length("cx", e.CX), CY: b.length("cy", e.CY),
			RX: b.length("rx", e.RX), RY: b.length("ry", e.RY),
		})
	}
	if r := ds.Rect; r != nil {
		geos = append(geos, RectShape{
			X: b.length("x", r.X), Y: b.length("y", r.Y),
			Width: b.length("width", r.Width), Height: b.length("height", r.Height),
			RX: b.length("rx", r.RX), RY: b.length("ry", r.RY),
		})
	}
	if l := ds.Line; l != nil {
		geos = append(geos, Line{
			X1: b.length("x1", l.X1), Y1: b.length("y1", l.Y1),
			X2: b.length("x2", l.X2), Y2: b.length("y2", l.Y2),
		})
	}
	if ds.Polyline != nil {
		pts, err := ParsePoints(*ds.Polyline)
		if err != nil {
			b.fail("points", err)
		}
		geos = append(geos, Polyline{Points: pts})
	}
	if ds.Polygon != nil {
		pts, err := ParsePoints(*ds.Polygon)
		if err != nil {
			b.fail("points", err)
		}
		geos = append(geos, Polyline{Points: pts, Closed: true})
	}
	if ds.Path != nil {
		p, err := ParsePathData(*ds.Path)
		if err != nil {
			b.fail("d", err)
		}
		geos = append(geos, PathData{Path: p})
	}

	switch len(geos) {
	case 0:
		b.fail("geometry", errors.New("no geometry"))
		return nil
	case 1:
		return geos[0]
	}
	b.fail("geometry", fmt.Errorf("%d geometries, using the first", len(geos)))
	return geos[0]
}

var (
	docLineCaps = map[string]LineCap{
		"butt":   LineCapButt,
		"round":  LineCapRound,
		"square": LineCapSquare,
	}
	docLineJoins = map[string]LineJoin{
		"miter":      LineJoinMiter,
		"miter-clip": LineJoinMiterClip,
		"round":      LineJoinRound,
		"bevel":      LineJoinBevel,
	}
	docGradientKinds = map[string]FillKind{
		"linear":  FillLinearGradient,
		"radial":  FillRadialGradient,
		"conical": FillConicalGradient,
	}
)

func (b *shapeBuilder) paint(ds *docShape, p *Paint) {
	if ds.Fill != nil {
		p.Fill = b.brush("fill", ds.Fill)
	}
	if ds.Stroke != nil {
		p.Stroke = b.brush("stroke", ds.Stroke)
	}
	if ds.Opacity != nil {
		p.Opacity = clamp01(*ds.Opacity)
	}
	if ds.FillOpacity != nil {
		p.FillOpacity = clamp01(*ds.FillOpacity)
	}
	if ds.StrokeOpacity != nil {
		p.StrokeOpacity = clamp01(*ds.StrokeOpacity)
	}

	switch cases.Fold().String(ds.FillRule) {
	case "", "nonzero":
	case "evenodd":
		p.FillRule = FillRuleEvenOdd
	default:
		b.fail("fill-rule", fmt.Errorf("unknown rule %q", ds.FillRule))
	}

	st := &p.StrokeStyle
	if ds.StrokeWidth != "" {
		st.Width = b.length("stroke-width", ds.StrokeWidth)
	}
	if ds.StrokeLinecap != "" {
		if c, ok := docLineCaps[ds.StrokeLinecap]; ok {
			st.Cap = c
		} else {
			b.fail("stroke-linecap", fmt.Errorf("unknown cap %q", ds.StrokeLinecap))
		}
	}
	if ds.StrokeLinejoin != "" {
		if j, ok := docLineJoins[ds.StrokeLinejoin]; ok {
			st.Join = j
		} else {
			b.fail("stroke-linejoin", fmt.Errorf("unknown join %q", ds.StrokeLinejoin))
		}
	}
	if ds.StrokeMiterlimit != nil {
		st.MiterLimit = *ds.StrokeMiterlimit
	}
	st.Dash = ds.StrokeDasharray
	st.DashOffset = ds.StrokeDashoffset

	for _, d := range ds.Clip {
		path, err := ParsePathData(d)
		if err != nil {
			b.fail("clip", err)
		}
		p.Clip = append(p.Clip, contourPoints(path.Flatten(clipSpacing))...)
	}
}

func (b *shapeBuilder) brush(attr string, db *docBrush) *Brush {
	if db.Gradient == nil {
		if cases.Fold().String(strings.TrimSpace(db.Color)) == "none" {
			return NoBrush()
		}
		return SolidBrush(b.color(attr, db.Color))
	}

	dg := db.Gradient
	kind, ok := docGradientKinds[cases.Fold().String(dg.Kind)]
	if !ok {
		b.fail(attr, fmt.Errorf("unknown gradient kind %q", dg.Kind))
		kind = FillLinearGradient
	}
	def := &GradientDef{
		Kind:  kind,
		Start: b.lengthPoint(attr+" start", dg.Start),
		End:   b.lengthPoint(attr+" end", dg.End),
	}
	if dg.Transform != "" {
		l, err := ParseTransformList(dg.Transform)
		if err != nil {
			b.fail(attr+" transform", err)
		}
		def.Transform = l
	}
	for _, s := range dg.Stops {
		c := b.color(attr+" stop", s.Color)
		if s.Opacity != nil {
			c = c.ScaleAlpha(clamp01(*s.Opacity))
		}
		def.Stops = append(def.Stops, GradientStop{Offset: s.Offset, Color: c})
	}
	if len(def.Stops) == 0 {
		b.fail(attr, errors.New("gradient without stops"))
		return NoBrush()
	}
	return &Brush{Gradient: def}
}

func (b *shapeBuilder) lengthPoint(attr string, v []docText) LengthPoint {
	switch len(v) {
	case 0:
		return LengthPoint{}
	case 2:
		return LengthPoint{X: b.length(attr, v[0]), Y: b.length(attr, v[1])}
	}
	b.fail(attr, fmt.Errorf("%w: want 2 values, got %d", ErrMalformedLength, len(v)))
	return LengthPoint{}
}
