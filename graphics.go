package svgmesh

import "math"

// Graphics carries the per-import state the path generators need: the
// vertex density and the viewport that percentages resolve against.
type Graphics struct {
	verticesPerMeter float64
	viewport         Rect
}

// NewGraphics creates a Graphics for the given density and viewport.
func NewGraphics(verticesPerMeter float64, viewport Rect) *Graphics {
	return &Graphics{verticesPerMeter: verticesPerMeter, viewport: viewport}
}

// VPM returns the target segment length in document units. A density of
// zero or less means 1000.
func (g *Graphics) VPM() float64 {
	if g == nil || g.verticesPerMeter <= 0 {
		return 1000
	}
	return 1000 / g.verticesPerMeter
}

// RoundQuality returns the sampling density for round joins and caps.
func (g *Graphics) RoundQuality() float64 {
	return 1 / g.VPM() * 0.5
}

// RoundTolerance is the flattening tolerance matching RoundQuality.
func (g *Graphics) RoundTolerance() float64 {
	return 0.125 / g.RoundQuality()
}

// Viewport returns the document viewport.
func (g *Graphics) Viewport() Rect {
	if g == nil {
		return Rect{}
	}
	return g.viewport
}

// ResolveX resolves a horizontal length against the viewport width.
func (g *Graphics) ResolveX(l Length) float64 {
	return l.Pixels(g.Viewport().Width())
}

// ResolveY resolves a vertical length against the viewport height.
func (g *Graphics) ResolveY(l Length) float64 {
	return l.Pixels(g.Viewport().Height())
}

// ResolveOther resolves a length that is neither horizontal nor vertical,
// such as a radius or stroke width, against the normalised viewport
// diagonal.
func (g *Graphics) ResolveOther(l Length) float64 {
	vp := g.Viewport()
	w, h := vp.Width(), vp.Height()
	return l.Pixels(math.Sqrt((w*w + h*h) / 2))
}
