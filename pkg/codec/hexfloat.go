package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatHexFloat renders f the way C's printf("%a") renders a float promoted to
// double: "0x1p+1", "-0x1.8p+1", "0x0p+0", "inf", "nan".
func FormatHexFloat(f float32) string {
	d := float64(f)
	switch {
	case math.IsNaN(d):
		if math.Signbit(d) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(d, 1):
		return "inf"
	case math.IsInf(d, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(d, 'x', -1, 64)

	// strconv pads the exponent to two digits, %a does not.
	p := strings.LastIndexByte(s, 'p')
	exp := strings.TrimLeft(s[p+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:p+2] + exp
}

// ParseHexFloat parses hexadecimal exponent text back into a float32. Decimal
// text is accepted too, like strtod.
func ParseHexFloat(s string) (float32, error) {
	text := s
	negative := false
	if strings.HasPrefix(text, "-") {
		negative = true
		text = text[1:]
	} else if strings.HasPrefix(text, "+") {
		text = text[1:]
	}

	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		return 0, fmt.Errorf("%w: invalid float text %q", ErrMalformedInput, s)
	}

	// strconv only accepts an unsigned NaN
	if strings.EqualFold(text, "nan") {
		nan := math.Float32frombits(0x7fc00000)
		if negative {
			nan = math.Float32frombits(0xffc00000)
		}
		return nan, nil
	}

	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid float text %q", ErrMalformedInput, s)
	}
	f := float32(v)
	if negative {
		f = -f
	}
	return f, nil
}
