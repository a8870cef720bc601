package service

import "strings"

// CleanContent strips a markdown code fence and the control characters that
// break JSON parsing from a model reply. Tab, newline and carriage return stay.
func CleanContent(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	return strings.Map(func(r rune) rune {
		if isStrippedControl(r) {
			return -1
		}
		return r
	}, s)
}

func isStrippedControl(r rune) bool {
	switch {
	case r <= 0x08:
		return true
	case r == 0x0B, r == 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r == 0x7F:
		return true
	}
	return false
}
