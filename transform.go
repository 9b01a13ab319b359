package svgmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// TransformKind identifies an SVG transform function.
type TransformKind int

const (
	TransformMatrix TransformKind = iota
	TransformTranslate
	TransformScale
	TransformRotate
	TransformSkewX
	TransformSkewY
)

var transformNames = [...]string{"matrix", "translate", "scale", "rotate", "skewX", "skewY"}

// String returns the SVG function name.
func (k TransformKind) String() string {
	if k < 0 || int(k) >= len(transformNames) {
		return fmt.Sprintf("TransformKind(%d)", int(k))
	}
	return transformNames[k]
}

// Transform is one entry of a transform list. Angles are in degrees.
type Transform struct {
	Kind TransformKind
	m    Matrix
	args []float64
}

// MatrixTransform wraps a matrix as a transform entry.
func MatrixTransform(m Matrix) Transform {
	s := m.SVG()
	return Transform{Kind: TransformMatrix, m: m, args: s[:]}
}

// TranslateTransform creates a translate(tx, ty) entry.
func TranslateTransform(tx, ty float64) Transform {
	return Transform{Kind: TransformTranslate, m: Translate(tx, ty), args: []float64{tx, ty}}
}

// ScaleTransform creates a scale(sx, sy) entry.
func ScaleTransform(sx, sy float64) Transform {
	return Transform{Kind: TransformScale, m: Scale(sx, sy), args: []float64{sx, sy}}
}

// RotateTransform creates a rotate(deg, cx, cy) entry.
func RotateTransform(deg, cx, cy float64) Transform {
	return Transform{Kind: TransformRotate, m: RotateAbout(deg*math.Pi/180, cx, cy), args: []float64{deg, cx, cy}}
}

// SkewXTransform creates a skewX(deg) entry.
func SkewXTransform(deg float64) Transform {
	return Transform{Kind: TransformSkewX, m: SkewX(deg * math.Pi / 180), args: []float64{deg}}
}

// SkewYTransform creates a skewY(deg) entry.
func SkewYTransform(deg float64) Transform {
	return Transform{Kind: TransformSkewY, m: SkewY(deg * math.Pi / 180), args: []float64{deg}}
}

// Matrix returns the matrix of the entry. The zero Transform is the identity.
func (t Transform) Matrix() Matrix {
	if t.Kind == TransformMatrix && t.args == nil {
		return Identity()
	}
	return t.m
}

// Args returns the arguments the entry was created with.
func (t Transform) Args() []float64 {
	return append([]float64(nil), t.args...)
}

// String formats the entry in SVG syntax.
func (t Transform) String() string {
	s := t.Kind.String() + "("
	for i, a := range t.args {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%g", a)
	}
	return s + ")"
}

// TransformList is an ordered list of transforms with a lazily computed
// composite matrix. It is not safe for concurrent use.
type TransformList struct {
	items  []Transform
	total  Matrix
	cached bool
}

// NewTransformList creates a list from entries.
func NewTransformList(items ...Transform) *TransformList {
	return &TransformList{items: append([]Transform(nil), items...)}
}

// Len returns the number of entries.
func (l *TransformList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns entry i. It panics if i is out of range.
func (l *TransformList) At(i int) Transform {
	return l.items[i]
}

// Append adds an entry at the end.
func (l *TransformList) Append(t Transform) {
	l.items = append(l.items, t)
	l.cached = false
}

// Insert adds an entry before index at. An index past the end appends.
func (l *TransformList) Insert(at int, t Transform) {
	if at < 0 {
		at = 0
	}
	if at >= len(l.items) {
		l.Append(t)
		return
	}
	l.items = append(l.items, Transform{})
	copy(l.items[at+1:], l.items[at:])
	l.items[at] = t
	l.cached = false
}

// AppendList adds all entries of other at the end.
func (l *TransformList) AppendList(other *TransformList) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
	l.cached = false
}

// Clear removes all entries.
func (l *TransformList) Clear() {
	l.items = l.items[:0]
	l.cached = false
}

// Matrix returns the composite t0 * t1 * ... * tn. A nil or empty list is
// the identity.
func (l *TransformList) Matrix() Matrix {
	if l == nil {
		return Identity()
	}
	if !l.cached {
		m := Identity()
		for _, t := range l.items {
			m = m.Multiply(t.Matrix())
		}
		l.total = m
		l.cached = true
	}
	return l.total
}

// Consolidate replaces all entries with a single matrix entry and returns it.
func (l *TransformList) Consolidate() Transform {
	t := MatrixTransform(l.Matrix())
	l.items = append(l.items[:0], t)
	l.cached = false
	return t
}

// ParseTransformList parses SVG transform syntax such as
// "translate(10 20) rotate(45, 5, 5)". Entries that cannot be parsed are
// skipped; the returned error joins one ErrMalformedTransform per skipped
// entry.
func ParseTransformList(text string) (*TransformList, error) {
	l := &TransformList{}
	var errs []error

	b := []byte(text)
	i := 0
	skipSep := func() {
		for i < len(b) && (parse.IsWhitespace(b[i]) || b[i] == ',') {
			i++
		}
	}

	for {
		skipSep()
		if i >= len(b) {
			break
		}
		start := i
		for i < len(b) && (b[i] >= 'a' && b[i] <= 'z' || b[i] >= 'A' && b[i] <= 'Z') {
			i++
		}
		name := string(b[start:i])
		skipSep()
		if name == "" || i >= len(b) || b[i] != '(' {
			errs = append(errs, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformedTransform, text[start:], start))
			break
		}
		i++

		var args []float64
		ok := true
		for {
			skipSep()
			if i >= len(b) {
				ok = false
				break
			}
			if b[i] == ')' {
				i++
				break
			}
			v, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				ok = false
				for i < len(b) && b[i] != ')' {
					i++
				}
				if i < len(b) {
					i++
				}
				break
			}
			args = append(args, v)
			i += n
		}

		var t Transform
		if ok {
			t, ok = makeTransform(name, args)
		}
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s%v", ErrMalformedTransform, name, args))
			continue
		}
		l.Append(t)
	}
	return l, errors.Join(errs...)
}

func makeTransform(name string, a []float64) (Transform, bool) {
	switch name {
	case "matrix":
		if len(a) == 6 {
			return MatrixTransform(FromSVG(a[0], a[1], a[2], a[3], a[4], a[5])), true
		}
	case "translate":
		switch len(a) {
		case 1:
			return TranslateTransform(a[0], 0), true
		case 2:
			return TranslateTransform(a[0], a[1]), true
		}
	case "scale":
		switch len(a) {
		case 1:
			return ScaleTransform(a[0], a[0]), true
		case 2:
			return ScaleTransform(a[0], a[1]), true
		}
	case "rotate":
		switch len(a) {
		case 1:
			return RotateTransform(a[0], 0, 0), true
		case 3:
			return RotateTransform(a[0], a[1], a[2]), true
		}
	case "skewX":
		if len(a) == 1 {
			return SkewXTransform(a[0]), true
		}
	case "skewY":
		if len(a) == 1 {
			return SkewYTransform(a[0]), true
		}
	}
	return Transform{}, false
}
