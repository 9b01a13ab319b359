package svgmesh

import (
	"fmt"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// ParsePathData parses SVG path data (the "d" attribute). Commands
// M L H V C S Q T A Z are accepted in absolute and relative form, with
// implicit repetition. On malformed input the path parsed so far is
// returned together with an error wrapping ErrMalformedPath.
func ParsePathData(d string) (*Path, error) {
	s := pathScanner{b: []byte(d)}
	p := NewPath()

	var (
		cmd      byte
		cur      Point
		start    Point
		ctrl     Point // last cubic or quadratic control point
		lastKind byte  // 'C' or 'Q' when ctrl is valid for reflection
	)

	for {
		s.skipSeparators()
		if s.done() {
			break
		}
		c := s.b[s.i]
		switch {
		case isPathCommand(c):
			cmd = c
			s.i++
		case cmd == 0 || cmd == 'Z' || cmd == 'z':
			return p, s.errorf("expected command, found %q", c)
		case cmd == 'M':
			cmd = 'L'
		case cmd == 'm':
			cmd = 'l'
		}

		if !p.HasCurrentPoint() && cmd != 'M' && cmd != 'm' {
			return p, s.errorf("path must start with moveto")
		}

		rel := cmd >= 'a'
		offset := func(q Point) Point {
			if rel {
				return q.Add(cur)
			}
			return q
		}

		kind := byte(0)
		switch cmd {
		case 'M', 'm':
			q, ok := s.point()
			if !ok {
				return p, s.errorf("moveto needs 2 numbers")
			}
			cur = offset(q)
			start = cur
			p.MoveTo(cur.X, cur.Y)

		case 'L', 'l':
			q, ok := s.point()
			if !ok {
				return p, s.errorf("lineto needs 2 numbers")
			}
			cur = offset(q)
			p.LineTo(cur.X, cur.Y)

		case 'H', 'h':
			x, ok := s.number()
			if !ok {
				return p, s.errorf("horizontal lineto needs a number")
			}
			if rel {
				x += cur.X
			}
			cur.X = x
			p.LineTo(cur.X, cur.Y)

		case 'V', 'v':
			y, ok := s.number()
			if !ok {
				return p, s.errorf("vertical lineto needs a number")
			}
			if rel {
				y += cur.Y
			}
			cur.Y = y
			p.LineTo(cur.X, cur.Y)

		case 'C', 'c', 'S', 's':
			var c1 Point
			if cmd == 'C' || cmd == 'c' {
				q, ok := s.point()
				if !ok {
					return p, s.errorf("curveto needs 6 numbers")
				}
				c1 = offset(q)
			} else {
				c1 = cur
				if lastKind == 'C' {
					c1 = cur.Mul(2).Sub(ctrl)
				}
			}
			q2, ok2 := s.point()
			q3, ok3 := s.point()
			if !ok2 || !ok3 {
				return p, s.errorf("curveto is missing numbers")
			}
			c2, end := offset(q2), offset(q3)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			ctrl, cur, kind = c2, end, 'C'

		case 'Q', 'q', 'T', 't':
			var c1 Point
			if cmd == 'Q' || cmd == 'q' {
				q, ok := s.point()
				if !ok {
					return p, s.errorf("quadratic curveto needs 4 numbers")
				}
				c1 = offset(q)
			} else {
				c1 = cur
				if lastKind == 'Q' {
					c1 = cur.Mul(2).Sub(ctrl)
				}
			}
			q, ok := s.point()
			if !ok {
				return p, s.errorf("quadratic curveto is missing numbers")
			}
			end := offset(q)
			p.QuadraticTo(c1.X, c1.Y, end.X, end.Y)
			ctrl, cur, kind = c1, end, 'Q'

		case 'A', 'a':
			rx, ok1 := s.number()
			ry, ok2 := s.number()
			rot, ok3 := s.number()
			large, ok4 := s.flag()
			sweep, ok5 := s.flag()
			q, ok6 := s.point()
			if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
				return p, s.errorf("arc needs 7 parameters")
			}
			end := offset(q)
			if !p.HasCurrentPoint() {
				p.MoveTo(cur.X, cur.Y)
			}
			p.ArcTo(rx, ry, rot, large, sweep, end.X, end.Y)
			cur = end

		case 'Z', 'z':
			if p.HasCurrentPoint() {
				p.Close()
			}
			cur = start
		}
		lastKind = kind
	}
	return p, nil
}

// MustParsePathData is like ParsePathData but panics on error.
func MustParsePathData(d string) *Path {
	p, err := ParsePathData(d)
	if err != nil {
		panic(err)
	}
	return p
}

func isPathCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

type pathScanner struct {
	b []byte
	i int
}

func (s *pathScanner) done() bool {
	return s.i >= len(s.b)
}

func (s *pathScanner) skipSeparators() {
	for s.i < len(s.b) && (parse.IsWhitespace(s.b[s.i]) || s.b[s.i] == ',') {
		s.i++
	}
}

func (s *pathScanner) number() (float64, bool) {
	s.skipSeparators()
	if s.done() {
		return 0, false
	}
	v, n := strconv.ParseFloat(s.b[s.i:])
	if n == 0 {
		return 0, false
	}
	s.i += n
	return v, true
}

func (s *pathScanner) point() (Point, bool) {
	x, ok := s.number()
	if !ok {
		return Point{}, false
	}
	y, ok := s.number()
	return Pt(x, y), ok
}

// flag reads a single 0 or 1, which may be packed against the next token.
func (s *pathScanner) flag() (bool, bool) {
	s.skipSeparators()
	if s.done() {
		return false, false
	}
	switch s.b[s.i] {
	case '0':
		s.i++
		return false, true
	case '1':
		s.i++
		return true, true
	}
	return false, false
}

func (s *pathScanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrMalformedPath, fmt.Sprintf(format, args...), s.i)
}
