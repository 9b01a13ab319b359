package svgmesh

import (
	"fmt"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// Geometry is the closed set of basic shapes. The implementations are
// Circle, Ellipse, RectShape, Line, Polyline and PathData.
type Geometry interface {
	geometry()
}

// Circle is a circle with centre (CX, CY) and radius R.
type Circle struct {
	CX, CY, R Length
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	CX, CY, RX, RY Length
}

// RectShape is a rectangle with optional corner radii. A zero radius is
// treated as unset and takes the other radius.
type RectShape struct {
	X, Y, Width, Height Length
	RX, RY              Length
}

// Line is a single segment.
type Line struct {
	X1, Y1, X2, Y2 Length
}

// Polyline is a list of points in user units. With Closed set it is a
// polygon.
type Polyline struct {
	Points []Point
	Closed bool
}

// PathData is a parsed path.
type PathData struct {
	Path *Path
}

func (Circle) geometry()    {}
func (Ellipse) geometry()   {}
func (RectShape) geometry() {}
func (Line) geometry()      {}
func (Polyline) geometry()  {}
func (PathData) geometry()  {}

// Shape is one drawable element of a document.
type Shape struct {
	Name      string
	Geometry  Geometry
	Transform *TransformList
	Paint     Paint

	// Hidden corresponds to visibility:hidden.
	Hidden bool
	// DisplayNone corresponds to display:none.
	DisplayNone bool
}

// Visible reports whether the shape contributes geometry.
func (s *Shape) Visible() bool {
	return !s.Hidden && !s.DisplayNone && s.Geometry != nil
}

// Label returns the name, or a description of the geometry when unnamed.
func (s *Shape) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%T", s.Geometry)
}

// Matrix returns the shape's own transform composed under parent.
func (s *Shape) Matrix(parent Matrix) Matrix {
	return parent.Multiply(s.Transform.Matrix())
}

// ParsePoints parses the points attribute of polyline and polygon. A
// trailing odd coordinate is dropped and reported.
func ParsePoints(text string) ([]Point, error) {
	b := []byte(text)
	var nums []float64
	for i := 0; i < len(b); {
		if parse.IsWhitespace(b[i]) || b[i] == ',' {
			i++
			continue
		}
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return pairs(nums), fmt.Errorf("%w: bad number at offset %d in points", ErrMalformedPath, i)
		}
		nums = append(nums, v)
		i += n
	}
	if len(nums)%2 != 0 {
		return pairs(nums), fmt.Errorf("%w: odd number of coordinates in points", ErrMalformedPath)
	}
	return pairs(nums), nil
}

func pairs(nums []float64) []Point {
	pts := make([]Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, Pt(nums[i], nums[i+1]))
	}
	return pts
}
