package detail

import (
	"strings"
	"unicode"
)

// Normalize lowercases and trims s, turns every rune that is neither an ASCII
// word character nor whitespace into a space, then collapses whitespace runs.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// IngredientMatched reports whether ingredient is one of the ingredients the
// backend marked as on hand, compared normalized or by plain casefold.
func IngredientMatched(ingredient string, has []string) bool {
	norm := Normalize(ingredient)
	plain := strings.ToLower(strings.TrimSpace(ingredient))
	for _, h := range has {
		if Normalize(h) == norm || strings.ToLower(strings.TrimSpace(h)) == plain {
			return true
		}
	}
	return false
}
