package services

import (
	"strings"
	"unicode"
)

// quoteOpens reports whether a quote rune at position i of s starts a string literal.
// Apostrophes inside words ("it's") do not.
func quoteOpens(s string, i int) bool {
	if i == 0 {
		return true
	}
	prev := rune(s[i-1])
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
}

// skipQuoted returns the index just past the string literal starting at i.
// An unterminated literal runs to the end of s.
func skipQuoted(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(s)
}

// braceDepth adds the braces of one line to depth. Quoted text is opaque.
// ok is false when depth drops below zero.
func braceDepth(line string, depth int) (int, bool) {
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case '"', '\'':
			if quoteOpens(line, i) {
				i = skipQuoted(line, i) - 1
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return depth, false
			}
		}
	}
	return depth, true
}

// sectionName normalizes a header: lowercased, whitespace runs become underscores.
func sectionName(header string) string {
	header = strings.TrimSpace(strings.TrimLeft(header, "#"))
	header = strings.TrimSuffix(header, ":")
	return strings.Join(strings.Fields(strings.ToLower(header)), "_")
}

func isSectionHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, "##")
}

// splitKey splits "key: rest" where key is an identifier-like token.
func splitKey(trimmed string) (key, rest string, ok bool) {
	i := strings.IndexByte(trimmed, ':')
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(trimmed[:i])
	if !isKey(key) {
		return "", "", false
	}
	return key, strings.TrimSpace(trimmed[i+1:]), true
}

func isKey(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
