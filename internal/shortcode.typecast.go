package internal

import (
	"strconv"
	"strings"
)

// CastValue converts a raw attribute value to the scalar it spells.
//
//	"42"      -> int64(42)
//	"47.21"   -> float64(47.21)
//	"true"    -> true
//	"  abc "  -> "abc"
//
// Values that are not strings pass through untouched, as do blank strings.
// A digit run too large for int64 becomes a float64.
func CastValue(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	if strings.TrimSpace(s) == StringValueEmpty {
		return s
	}

	switch {
	case isDigits(s):
		if n, err := strconv.ParseInt(s, NumberBase, IntBitSize); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, FloatBitSize); err == nil {
			return f
		}
	case isDecimal(s):
		if f, err := strconv.ParseFloat(s, FloatBitSize); err == nil {
			return f
		}
	case s == LiteralTrue:
		return true
	case s == LiteralFalse:
		return false
	}

	return strings.TrimSpace(s)
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == StringValueEmpty {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isDecimal reports whether s is digits, a single dot, then digits.
func isDecimal(s string) bool {
	dot := strings.IndexByte(s, CharDot)
	if dot <= 0 {
		return false
	}
	return isDigits(s[:dot]) && isDigits(s[dot+1:])
}
