package render

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title upper-cases the first character only. The rest of the name is
// left untouched.
func Title(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// StatLabel is the display form of a stat name, e.g. "special-attack"
// becomes "Special attack".
func StatLabel(name string) string {
	return Title(strings.ReplaceAll(name, "-", " "))
}

// FormatHeight converts decimeters to a metre label.
func FormatHeight(decimeters int) string {
	return tenths(decimeters) + " m"
}

// FormatWeight converts hectograms to a kilogram label.
func FormatWeight(hectograms int) string {
	return tenths(hectograms) + " kg"
}

func tenths(v int) string {
	return strconv.FormatFloat(float64(v)/10, 'f', -1, 64)
}
