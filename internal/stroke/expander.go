package stroke

import (
	"math"

	"github.com/gogpu/svgmesh/internal/flatten"
	"github.com/gogpu/svgmesh/internal/geom"
)

// Point is the shared geometry point, also used as a 2D vector.
type Point = geom.Point

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinMiterClip specifies a miter clipped at the miter limit.
	LineJoinMiterClip
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// DefaultMiterLimit is the miter limit used when a style leaves it unset.
const DefaultMiterLimit = 4.0

// Style defines the stroke geometry.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// DefaultStyle returns a one unit wide butt/miter style.
func DefaultStyle() Style {
	return Style{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: DefaultMiterLimit,
	}
}

// Expander converts polylines into stroke outline rings.
// An Expander is not safe for concurrent use.
type Expander struct {
	style Style

	// Tolerance for arc flattening in round joins and caps.
	tolerance float64

	forward  []Point
	backward []Point
	output   [][]Point

	startPt   Point
	startNorm Point
	startTan  Point
	lastPt    Point
	lastTan   Point
	lastNorm  Point

	// Join threshold for skipping near-straight joins
	joinThresh float64
}

// NewExpander creates an expander with the given style.
func NewExpander(style Style) *Expander {
	if style.MiterLimit <= 0 {
		style.MiterLimit = DefaultMiterLimit
	}
	return &Expander{
		style:     style,
		tolerance: 0.25,
	}
}

// SetTolerance sets the arc flattening tolerance. Non-positive values are
// ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand strokes one contour. When closed is true the stroke wraps from the
// last point back to the first. Adjacent duplicate points are dropped first;
// a contour with fewer than two distinct points yields nothing.
func (e *Expander) Expand(pts []Point, closed bool) [][]Point {
	if e.style.Width <= 0 {
		return nil
	}
	pts = geom.Dedupe(pts)
	if closed {
		pts = geom.Open(pts)
	}
	if len(pts) < 2 {
		return nil
	}

	e.reset()
	e.startPt, e.lastPt = pts[0], pts[0]
	for _, p := range pts[1:] {
		e.segmentTo(p)
	}
	if closed {
		e.segmentTo(e.startPt)
		e.finishClosed()
	} else {
		e.finish()
	}
	return e.output
}

// ExpandAll strokes several contours with the same close rule.
func (e *Expander) ExpandAll(contours [][]Point, closed bool) [][]Point {
	var out [][]Point
	for _, c := range contours {
		out = append(out, e.Expand(c, closed)...)
	}
	return out
}

func (e *Expander) reset() {
	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
	e.output = nil
	e.startPt = Point{}
	e.startNorm = Point{}
	e.startTan = Point{}
	e.lastPt = Point{}
	e.lastTan = Point{}
	e.lastNorm = Point{}
	e.joinThresh = 2.0 * e.tolerance / e.style.Width
}

func (e *Expander) segmentTo(p Point) {
	tangent := p.Sub(e.lastPt)
	if tangent.LengthSquared() < geom.Epsilon*geom.Epsilon {
		return
	}
	e.doJoin(tangent)
	e.lastTan = tangent
	e.doLine(tangent, p)
}

func (e *Expander) normal(tan Point) Point {
	return tan.Perp().Mul(0.5 * e.style.Width / tan.Length())
}

// doJoin handles joining the current segment to the previous one.
func (e *Expander) doJoin(tan0 Point) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if len(e.forward) == 0 {
		e.forward = append(e.forward, p0.Sub(norm))
		e.backward = append(e.backward, p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}
	e.joinWithPrevious(p0, norm, tan0)
}

func (e *Expander) joinWithPrevious(p0, norm, tan0 Point) {
	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Near-straight: keep both sides continuous without join geometry.
	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward = append(e.forward, p0.Sub(norm))
		e.backward = append(e.backward, p0.Add(norm))
		return
	}

	switch e.style.Join {
	case LineJoinBevel:
		e.forward = append(e.forward, p0.Sub(norm))
		e.backward = append(e.backward, p0.Add(norm))
	case LineJoinMiter, LineJoinMiterClip:
		e.applyMiterJoin(p0, norm, ab, cd, cross, dot, hypot)
	case LineJoinRound:
		e.applyRoundJoin(p0, norm, cross, dot)
	}
}

func (e *Expander) applyMiterJoin(p0, norm, ab, cd Point, cross, dot, hypot float64) {
	limitSq := e.style.MiterLimit * e.style.MiterLimit
	switch {
	case 2.0*hypot < (hypot+dot)*limitSq:
		e.computeMiterPoint(p0, norm, ab, cd, cross)
	case e.style.Join == LineJoinMiterClip:
		e.computeClippedMiter(p0, norm, ab, cd, cross)
	}
	e.forward = append(e.forward, p0.Sub(norm))
	e.backward = append(e.backward, p0.Add(norm))
}

func (e *Expander) computeMiterPoint(p0, norm, ab, cd Point, cross float64) {
	lastNorm := e.normal(ab)

	if cross > 0.0 {
		fpLast := p0.Sub(lastNorm)
		fpThis := p0.Sub(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.forward = append(e.forward, fpThis.Sub(cd.Mul(h)))
		e.backward = append(e.backward, p0)
	} else if cross < 0.0 {
		fpLast := p0.Add(lastNorm)
		fpThis := p0.Add(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		e.backward = append(e.backward, fpThis.Sub(cd.Mul(h)))
		e.forward = append(e.forward, p0)
	}
}

// computeClippedMiter cuts the miter with a line perpendicular to the join
// bisector at MiterLimit*width/2 from the joint.
func (e *Expander) computeClippedMiter(p0, norm, ab, cd Point, cross float64) {
	if cross == 0 {
		return
	}
	lastNorm := e.normal(ab)
	side := 1.0
	if cross > 0 {
		side = -1.0
	}
	a := p0.Add(lastNorm.Mul(side))
	b := p0.Add(norm.Mul(side))
	u := lastNorm.Add(norm).Mul(side).Normalize()
	abn := ab.Normalize()
	cdn := cd.Normalize()
	if u == (Point{}) {
		u = abn
	}

	d := e.style.MiterLimit * e.style.Width / 2
	da := abn.Dot(u)
	db := cdn.Dot(u)
	if da < geom.Epsilon || db > -geom.Epsilon {
		return
	}
	c1 := a.Add(abn.Mul((d - a.Sub(p0).Dot(u)) / da))
	c2 := b.Sub(cdn.Mul((d - b.Sub(p0).Dot(u)) / -db))

	if cross > 0 {
		e.forward = append(e.forward, c1, c2)
		e.backward = append(e.backward, p0)
	} else {
		e.backward = append(e.backward, c1, c2)
		e.forward = append(e.forward, p0)
	}
}

// applyRoundJoin sweeps from the previous normal to the current one on the
// outer side.
func (e *Expander) applyRoundJoin(p0, norm Point, cross, dot float64) {
	lastNorm := e.normal(e.lastTan)

	angle := math.Atan2(cross, dot)
	if angle > 0.0 {
		e.backward = append(e.backward, p0.Add(norm))
		e.forward = append(e.forward, e.arc(p0, lastNorm.Neg(), angle)...)
	} else {
		e.forward = append(e.forward, p0.Sub(norm))
		e.backward = append(e.backward, e.arc(p0, lastNorm, angle)...)
	}
}

func (e *Expander) doLine(tangent, p1 Point) {
	norm := e.normal(tangent)
	e.forward = append(e.forward, p1.Sub(norm))
	e.backward = append(e.backward, p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish completes an open contour with caps.
func (e *Expander) finish() {
	if len(e.forward) == 0 {
		return
	}
	ring := make([]Point, 0, len(e.forward)+len(e.backward)+8)
	ring = append(ring, e.forward...)
	ring = append(ring, e.capPoints(e.lastPt, e.lastNorm.Neg())...)
	for i := len(e.backward) - 1; i >= 0; i-- {
		ring = append(ring, e.backward[i])
	}
	ring = append(ring, e.capPoints(e.startPt, e.startNorm)...)
	e.emit(ring)
}

// finishClosed completes a closed contour as two rings.
func (e *Expander) finishClosed() {
	if len(e.forward) == 0 {
		return
	}
	e.doJoin(e.startTan)

	e.emit(append([]Point(nil), e.forward...))
	inner := make([]Point, len(e.backward))
	for i, p := range e.backward {
		inner[len(e.backward)-1-i] = p
	}
	e.emit(inner)
}

func (e *Expander) emit(ring []Point) {
	ring = geom.Open(geom.Dedupe(ring))
	if len(ring) >= 3 {
		e.output = append(e.output, ring)
	}
}

// capPoints returns the cap geometry at center, starting on the side that
// norm points to and ending opposite it. The endpoints themselves are not
// included.
func (e *Expander) capPoints(center, norm Point) []Point {
	switch e.style.Cap {
	case LineCapRound:
		pts := e.arc(center, norm, math.Pi)
		if len(pts) > 0 {
			pts = pts[:len(pts)-1]
		}
		return pts
	case LineCapSquare:
		return []Point{
			squarePoint(center, norm, Point{X: 1, Y: 1}),
			squarePoint(center, norm, Point{X: -1, Y: 1}),
		}
	}
	return nil
}

// squarePoint applies the affine transform [norm.x, norm.y, -norm.y, norm.x, center.x, center.y].
func squarePoint(center, norm, p Point) Point {
	return Point{
		X: norm.X*p.X - norm.Y*p.Y + center.X,
		Y: norm.Y*p.X + norm.X*p.Y + center.Y,
	}
}

// arc approximates a circular arc around center starting at center+norm
// and sweeping by angle. The start point is not included.
func (e *Expander) arc(center, norm Point, angle float64) []Point {
	numSegments := int(math.Ceil(math.Abs(angle)/(math.Pi/2) - 1e-9))
	if numSegments < 1 {
		numSegments = 1
	}
	step := angle / float64(numSegments)
	a0 := norm.Angle()
	radius := norm.Length()

	var out []Point
	for i := 0; i < numSegments; i++ {
		a1 := a0 + step
		p0, c1, c2, p1 := arcSegment(center, radius, a0, a1)
		out = append(out, flatten.CubicAdaptive(p0, c1, c2, p1, e.tolerance)...)
		a0 = a1
	}
	return out
}

// arcSegment returns the cubic Bezier approximating an arc of at most 90
// degrees.
func arcSegment(center Point, radius, a0, a1 float64) (p0, c1, c2, p1 Point) {
	da := a1 - a0
	alpha := math.Sin(da) * (math.Sqrt(4+3*math.Tan(da/2)*math.Tan(da/2)) - 1) / 3

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)

	p0 = Point{X: center.X + radius*cos0, Y: center.Y + radius*sin0}
	p1 = Point{X: center.X + radius*cos1, Y: center.Y + radius*sin1}
	c1 = Point{X: p0.X - alpha*radius*sin0, Y: p0.Y + alpha*radius*cos0}
	c2 = Point{X: p1.X + alpha*radius*sin1, Y: p1.Y - alpha*radius*cos1}
	return p0, c1, c2, p1
}
