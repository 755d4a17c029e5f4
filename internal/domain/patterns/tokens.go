package patterns

import (
	"strings"
	"unicode"
)

// TokenSet is the set of lowercase word tokens of a text.
type TokenSet map[string]struct{}

// Tokenize splits text on anything that is not a letter, digit or hyphen.
// Hyphenated words are stored whole and by part, so "multi-step" yields
// "multi-step", "multi" and "step".
func Tokenize(text string) TokenSet {
	set := make(TokenSet)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for _, w := range words {
		w = strings.Trim(w, "-")
		if w == "" {
			continue
		}
		set[w] = struct{}{}
		if strings.Contains(w, "-") {
			for _, part := range strings.Split(w, "-") {
				if part != "" {
					set[part] = struct{}{}
				}
			}
		}
	}
	return set
}

// Contains reports whether keyword is a whole token.
func (s TokenSet) Contains(keyword string) bool {
	_, ok := s[strings.ToLower(keyword)]
	return ok
}

// Matches returns the keywords present, in the order given.
func (s TokenSet) Matches(keywords []string) []string {
	var hits []string
	for _, k := range keywords {
		if s.Contains(k) {
			hits = append(hits, k)
		}
	}
	return hits
}
