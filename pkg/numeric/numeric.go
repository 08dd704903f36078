// Package numeric holds the best-effort number handling shared by the
// cleaning stages. Parsing is an explicit fallible operation: callers get a
// ParseResult and decide what a failure means for their cell.
package numeric

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// plain decimal notation with optional exponent; no hex, no underscores, no inf/nan
var numberPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// ParseResult is the outcome of Parse. On failure Value is zero and
// Original holds the input unchanged.
type ParseResult struct {
	Value    float64
	Original string
	OK       bool
}

// Parse reads s, ignoring surrounding whitespace, as a finite float64
func Parse(s string) ParseResult {
	res := ParseResult{Original: s}
	trimmed := strings.TrimSpace(s)
	if !numberPattern.MatchString(trimmed) {
		return res
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		// out of range
		return res
	}
	res.Value = v
	res.OK = true
	return res
}

// RepairDecimalComma rewrites every comma that has a digit immediately
// before and after it into a period: "1,25" becomes "1.25". Other commas are
// left alone.
func RepairDecimalComma(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prev := utf8.RuneError
	for i, r := range s {
		out := r
		if r == ',' && unicode.IsDigit(prev) {
			next, _ := utf8.DecodeRuneInString(s[i+1:])
			if unicode.IsDigit(next) {
				out = '.'
			}
		}
		b.WriteRune(out)
		prev = r
	}
	return b.String()
}
