package match

import "strings"

// Normalize produces the canonical comparison key for an ingredient name. It
// lowercases, removes all whitespace and drops every rune that is not an ASCII
// word character or Hangul. Total and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isWordRune reports whether r survives normalization: ASCII letters, digits,
// underscore, Hangul syllables and Hangul compatibility jamo.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		return true
	case r >= 0xAC00 && r <= 0xD7A3:
		return true
	case r >= 0x3131 && r <= 0x3163:
		return true
	}
	return false
}
