package internal

import (
	"strings"
)

// EscapeBrackets replaces every run of '[' with "&#91;" and every run of
// ']' with "&#93;", so "[[tag]]" becomes "&#91;tag&#93;".
func EscapeBrackets(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	var prev rune
	for _, r := range s {
		switch r {
		case CharOpenBracket:
			if prev != CharOpenBracket {
				sb.WriteString(EntityOpenBracket)
			}
		case CharCloseBracket:
			if prev != CharCloseBracket {
				sb.WriteString(EntityCloseBracket)
			}
		default:
			sb.WriteRune(r)
		}
		prev = r
	}

	return sb.String()
}

// IsEscaped reports whether a match carries both escape brackets.
func IsEscaped(m *TagMatch) bool {
	return strings.TrimSpace(m.OpenEscape) == string(CharOpenBracket) &&
		strings.TrimSpace(m.CloseEscape) == string(CharCloseBracket)
}

// ReplaceLiteral replaces every occurrence of old in s with replacement.
// old is matched as plain text, never as a pattern, and replacement is
// inserted verbatim.
func ReplaceLiteral(s, old, replacement string) string {
	if old == StringValueEmpty {
		return s
	}
	return strings.ReplaceAll(s, old, replacement)
}
