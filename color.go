package svgmesh

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// RGBA8 is an 8-bit colour with straight (non-premultiplied) alpha.
type RGBA8 struct {
	R, G, B, A uint8
}

// Common colors
var (
	Black       = RGBA8{0, 0, 0, 255}
	White       = RGBA8{255, 255, 255, 255}
	Transparent = RGBA8{}
)

// RGB8 creates an opaque colour.
func RGB8(r, g, b uint8) RGBA8 {
	return RGBA8{R: r, G: g, B: b, A: 255}
}

// RGBA implements color.Color.
func (c RGBA8) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// NRGBA converts to the standard library type.
func (c RGBA8) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// Alpha returns alpha in [0, 1].
func (c RGBA8) Alpha() float64 {
	return float64(c.A) / 255
}

// IsOpaque reports whether alpha is 255.
func (c RGBA8) IsOpaque() bool {
	return c.A == 255
}

// ScaleAlpha multiplies alpha by f, rounding to the nearest step.
func (c RGBA8) ScaleAlpha(f float64) RGBA8 {
	c.A = unit8(float64(c.A) / 255 * f)
	return c
}

// Hex returns the colour as uppercase RRGGBB without alpha.
func (c RGBA8) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// String returns #RRGGBBAA.
func (c RGBA8) String() string {
	return fmt.Sprintf("#%s%02X", c.Hex(), c.A)
}

// Lerp interpolates between c and o. Channels are rounded.
func (c RGBA8) Lerp(o RGBA8, t float64) RGBA8 {
	rgb := c.colorful().BlendRgb(o.colorful(), t)
	r, g, b := rgb.RGB255()
	return RGBA8{R: r, G: g, B: b, A: unit8((float64(c.A) + (float64(o.A)-float64(c.A))*t) / 255)}
}

func (c RGBA8) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, a uint8) RGBA8 {
	r, g, b := c.Clamped().RGB255()
	return RGBA8{R: r, G: g, B: b, A: a}
}

// unit8 maps [0, 1] to [0, 255] with rounding and clamping.
func unit8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// ParseColor parses CSS colour text: #rgb, #rrggbb, #rrggbbaa, rgb(),
// rgba(), the CSS named colours and "transparent". Names are matched
// case-insensitively.
func ParseColor(text string) (RGBA8, error) {
	s := string(parse.TrimWhitespace([]byte(text)))
	if s == "" {
		return Black, fmt.Errorf("%w: empty", ErrMalformedColor)
	}
	lower := cases.Fold().String(s)

	switch {
	case s[0] == '#':
		return parseHexColor(s)
	case strings.HasPrefix(lower, "rgb"):
		return parseRGBFunc(lower)
	case lower == "transparent":
		return Transparent, nil
	}
	if c, ok := colornames.Map[lower]; ok {
		return RGBA8{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return Black, fmt.Errorf("%w: %q", ErrMalformedColor, text)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(text string) RGBA8 {
	c, err := ParseColor(text)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHexColor(s string) (RGBA8, error) {
	a := uint8(255)
	if len(s) == 9 {
		var v uint8
		if _, err := fmt.Sscanf(s[7:], "%2x", &v); err != nil {
			return Black, fmt.Errorf("%w: %q", ErrMalformedColor, s)
		}
		a = v
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("%w: %w", ErrMalformedColor, err)
	}
	return fromColorful(c, a), nil
}

// parseRGBFunc parses rgb(r, g, b) and rgba(r, g, b, a). Channels are
// 0..255 or percentages; alpha is 0..1 or a percentage.
func parseRGBFunc(s string) (RGBA8, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Black, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}
	b := []byte(s[open+1 : len(s)-1])

	var vals []float64
	var pct []bool
	for i := 0; i < len(b); {
		if parse.IsWhitespace(b[i]) || b[i] == ',' || b[i] == '/' {
			i++
			continue
		}
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return Black, fmt.Errorf("%w: %q", ErrMalformedColor, s)
		}
		i += n
		isPct := i < len(b) && b[i] == '%'
		if isPct {
			i++
		}
		vals = append(vals, v)
		pct = append(pct, isPct)
	}
	if len(vals) != 3 && len(vals) != 4 {
		return Black, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}

	var ch [4]uint8
	ch[3] = 255
	for i, v := range vals {
		switch {
		case pct[i]:
			ch[i] = unit8(v / 100)
		case i == 3:
			ch[i] = unit8(v)
		default:
			ch[i] = unit8(v / 255)
		}
	}
	return RGBA8{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
