package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// scientificRe matches a signed decimal mantissa followed by an exponent,
// e.g. "1.23E+5" or "-4e2".
var scientificRe = regexp.MustCompile(`^([+-]?)(\d+)(?:\.(\d+))?[eE]([+-]?\d+)$`)

// ToNumber converts a raw cell to a finite float. Thousands separators are
// removed first. Empty strings, "-", "null" (any case) and anything that does
// not parse to a finite number report ok=false.
func ToNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" || s == "-" || strings.EqualFold(s, "null") {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ExpandScientific rewrites a number written in scientific notation as plain
// digits ("1.23E+5" -> "123000") without going through float64, so long
// identifiers such as meter numbers keep every digit. Strings that are not in
// scientific notation are returned unchanged.
func ExpandScientific(raw string) string {
	m := scientificRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return raw
	}

	sign, intPart, fracPart := m[1], m[2], m[3]
	exponent, err := strconv.Atoi(m[4])
	if err != nil {
		return raw
	}

	digits := intPart + fracPart
	point := len(intPart) + exponent

	var whole, frac string
	switch {
	case point <= 0:
		whole = "0"
		frac = strings.Repeat("0", -point) + digits
	case point >= len(digits):
		whole = digits + strings.Repeat("0", point-len(digits))
	default:
		whole = digits[:point]
		frac = digits[point:]
	}

	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}

	if sign == "+" {
		sign = ""
	}
	if frac == "" {
		return sign + whole
	}
	return sign + whole + "." + frac
}

// RoundTo rounds v half away from zero to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
