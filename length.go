package svgmesh

import (
	"fmt"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/text/cases"
)

// LengthUnit is the unit suffix of a [Length].
type LengthUnit int

const (
	// UnitNumber is a bare number, treated as user units (pixels).
	UnitNumber LengthUnit = iota
	UnitPercent
	UnitEm
	UnitEx
	UnitPx
	UnitCm
	UnitMm
	UnitIn
	UnitPt
	UnitPc
)

var unitNames = [...]string{"", "%", "em", "ex", "px", "cm", "mm", "in", "pt", "pc"}

// Pixels per unit at 96 dpi with a 16px font.
var unitPixels = [...]float64{
	UnitNumber:  1,
	UnitPercent: 1,
	UnitEm:      16,
	UnitEx:      8,
	UnitPx:      1,
	UnitCm:      96 / 2.54,
	UnitMm:      96 / 25.4,
	UnitIn:      96,
	UnitPt:      96.0 / 72,
	UnitPc:      16,
}

// String returns the unit suffix.
func (u LengthUnit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("LengthUnit(%d)", int(u))
	}
	return unitNames[u]
}

// Length is a number with a unit. The zero value is 0 user units.
type Length struct {
	value float64
	unit  LengthUnit
}

// NewLength creates a length with the given unit.
func NewLength(v float64, unit LengthUnit) Length {
	return Length{value: v, unit: unit}
}

// Px creates a length in pixels.
func Px(v float64) Length {
	return Length{value: v, unit: UnitPx}
}

// Percent creates a percentage length.
func Percent(v float64) Length {
	return Length{value: v, unit: UnitPercent}
}

// ParseLength parses text such as "12", "1.5em", "50%" or "-3e2mm".
//
// Empty text yields the zero length. Malformed text also yields the zero
// length, together with an error wrapping [ErrMalformedLength]; callers that
// only want the value may ignore the error.
func ParseLength(text string) (Length, error) {
	b := parse.TrimWhitespace([]byte(text))
	if len(b) == 0 {
		return Length{}, nil
	}
	v, n := strconv.ParseFloat(b)
	if n == 0 {
		return Length{}, fmt.Errorf("%w: %q", ErrMalformedLength, text)
	}
	unit, ok := parseUnit(string(parse.TrimWhitespace(b[n:])))
	if !ok {
		return Length{}, fmt.Errorf("%w: unknown unit in %q", ErrMalformedLength, text)
	}
	return Length{value: v, unit: unit}, nil
}

// MustParseLength is like ParseLength but ignores malformed input.
func MustParseLength(text string) Length {
	l, _ := ParseLength(text)
	return l
}

func parseUnit(suffix string) (LengthUnit, bool) {
	if suffix == "" {
		return UnitNumber, true
	}
	suffix = cases.Fold().String(suffix)
	for u, name := range unitNames {
		if u != int(UnitNumber) && name == suffix {
			return LengthUnit(u), true
		}
	}
	return UnitNumber, false
}

// Value returns the number without unit conversion.
func (l Length) Value() float64 {
	return l.value
}

// Unit returns the length unit.
func (l Length) Unit() LengthUnit {
	return l.unit
}

// IsPercent reports whether the length is a percentage.
func (l Length) IsPercent() bool {
	return l.unit == UnitPercent
}

// Pixels resolves the length to pixels. Percentages resolve against ref.
func (l Length) Pixels(ref float64) float64 {
	if l.unit == UnitPercent {
		return l.value / 100 * ref
	}
	if l.unit < 0 || int(l.unit) >= len(unitPixels) {
		return l.value
	}
	return l.value * unitPixels[l.unit]
}

// Multiply scales one length by another. A percentage of a percentage
// stays a percentage; every other combination resolves to pixels.
func (l Length) Multiply(o Length) Length {
	if l.unit == UnitPercent && o.unit == UnitPercent {
		return Percent(l.value * o.value / 100)
	}
	return Px(l.Pixels(0) * o.Pixels(0))
}

// String formats the length in SVG syntax.
func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.value, l.unit)
}
