package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/laserfinity/laserfinity/pkg/errors"
)

// Unit is a length unit recognised in dimension strings.
type Unit string

// Supported units. Anything else is read as inches.
const (
	Inch       Unit = "in"
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
)

// Dimension is a parsed length together with the unit it was written in.
type Dimension struct {
	Value float64
	Unit  Unit
}

// Inches returns the dimension normalised to inches.
func (d Dimension) Inches() float64 {
	switch d.Unit {
	case Millimeter:
		return MillimetersToInches(d.Value)
	case Centimeter:
		return MillimetersToInches(d.Value * 10)
	default:
		return d.Value
	}
}

// String formats the dimension the way it would be typed.
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'g', -1, 64) + string(d.Unit)
}

// ParseDimension splits text into a leading quantity and a trailing unit
// suffix. The quantity is parsed with [ParseQuantity]; the suffix is matched
// case-insensitively and defaults to inches.
func ParseDimension(text string) (Dimension, error) {
	s := strings.TrimSpace(text)
	n := numericPrefix(s)
	if strings.TrimSpace(s[:n]) == "" {
		return Dimension{}, errors.NewParseError(text, "no numeric value")
	}

	v, err := ParseQuantity(s[:n])
	if err != nil {
		return Dimension{}, errors.NewParseError(text, reasonOf(err))
	}
	return Dimension{Value: v, Unit: parseUnit(s[n:])}, nil
}

// ParseInches parses a dimension string and returns its length in inches.
func ParseInches(text string) (float64, error) {
	d, err := ParseDimension(text)
	if err != nil {
		return 0, err
	}
	return d.Inches(), nil
}

// ParseQuantity parses a plain decimal ("7", "10.5"), a mixed number
// ("10 1/2") or a bare fraction ("3/4").
func ParseQuantity(text string) (float64, error) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return 0, errors.NewParseError(text, "no numeric value")
	case 1:
		if strings.Contains(fields[0], "/") {
			f, reason := parseFraction(fields[0])
			if reason != "" {
				return 0, errors.NewParseError(text, reason)
			}
			return f, nil
		}
		v, reason := parseDecimal(fields[0])
		if reason != "" {
			return 0, errors.NewParseError(text, reason)
		}
		return v, nil
	case 2:
		whole, reason := parseDecimal(fields[0])
		if reason != "" {
			return 0, errors.NewParseError(text, reason)
		}
		if !strings.Contains(fields[1], "/") {
			return 0, errors.NewParseError(text, "fraction is missing '/'")
		}
		f, reason := parseFraction(fields[1])
		if reason != "" {
			return 0, errors.NewParseError(text, reason)
		}
		return whole + f, nil
	default:
		return 0, errors.NewParseError(text, "expected a number or '<whole> <numerator>/<denominator>'")
	}
}

func parseDecimal(s string) (float64, string) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("%q is not a number", s)
	}
	return v, ""
}

func parseFraction(s string) (float64, string) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, fmt.Sprintf("%q is not a fraction", s)
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Sprintf("numerator %q is not an integer", parts[0])
	}
	den, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Sprintf("denominator %q is not an integer", parts[1])
	}
	if den == 0 {
		return 0, "zero denominator"
	}
	return float64(num) / float64(den), ""
}

// numericPrefix returns the length of the leading run of digits, dots,
// slashes and spaces.
func numericPrefix(s string) int {
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '/', r == ' ', r == '\t':
		default:
			return i
		}
	}
	return len(s)
}

func parseUnit(suffix string) Unit {
	switch strings.ToLower(strings.TrimSpace(suffix)) {
	case "mm", "millimeter", "millimeters", "millimetre", "millimetres":
		return Millimeter
	case "cm", "centimeter", "centimeters", "centimetre", "centimetres":
		return Centimeter
	default:
		return Inch
	}
}

// reasonOf recovers the ParseError reason so the re-wrapped error reports the
// full dimension text instead of just its numeric part.
func reasonOf(err error) string {
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return err.Error()
}
