package similarity

import (
	"strings"
	"unicode"
)

// Normalize produces the canonical form used for cache keys and exact-match
// shortcuts: lower-cased, punctuation stripped, surrounding whitespace
// trimmed. Empty or absent input normalizes to the empty string. Two strings
// that normalize identically are treated as identical (similarity 1.0)
// without consulting cache or oracle.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		sb.WriteRune(r)
	}

	return strings.TrimSpace(sb.String())
}

// sortPair returns the two normalized texts in lexicographic order so that
// cache keys are undirected: resolve(kind,a,b) and resolve(kind,b,a) hit the
// same entry structurally, not just by value.
func sortPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
