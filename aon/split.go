package aon

import "strings"

// SplitTopLevel splits s on sep, ignoring separators nested inside (...)
// or [...] and inside quoted strings. Parts are trimmed and a trailing
// empty part is dropped, so "" yields no parts.
func SplitTopLevel(s string, sep byte) []string {
	var parts []string
	depthParen, depthBrack := 0, 0
	inQuote, escaped := false, false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '(':
			depthParen++
		case ')':
			depthParen--
		case '[':
			depthBrack++
		case ']':
			depthBrack--
		case sep:
			if depthParen == 0 && depthBrack == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	if last := strings.TrimSpace(s[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// splitCommas splits on top-level commas.
func splitCommas(s string) []string {
	return SplitTopLevel(s, ',')
}

// splitSemicolons splits on top-level semicolons.
func splitSemicolons(s string) []string {
	return SplitTopLevel(s, ';')
}
