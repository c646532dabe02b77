package util

import (
	"strings"
	"unicode"
)

// SanitizeLine strips control and invisible characters and surrounding
// whitespace. Used for single-line fields such as titles.
func SanitizeLine(s string) string {
	return strings.TrimSpace(strip(s, false))
}

// SanitizeText is SanitizeLine for multi-line bodies: newlines and tabs
// survive, and CRLF is folded to LF.
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(strip(s, true))
}

func strip(s string, keepLayout bool) string {
	builder := strings.Builder{}
	builder.Grow(len(s))

	for _, char := range s {
		if keepLayout && (char == '\n' || char == '\t') {
			builder.WriteRune(char)
			continue
		}
		if unicode.IsControl(char) || isInvisibleUnicode(char) {
			continue
		}
		if char == unicode.ReplacementChar {
			continue
		}
		builder.WriteRune(char)
	}

	return builder.String()
}

// isInvisibleUnicode reports zero-width and other format characters.
func isInvisibleUnicode(r rune) bool {
	switch r {
	case
		'\u200B', // Zero-Width Space
		'\u200C', // Zero-Width Non-Joiner
		'\u200D', // Zero-Width Joiner
		'\u2060', // Word Joiner
		'\uFEFF': // BOM
		return true
	}

	return unicode.Is(unicode.Cf, r)
}
