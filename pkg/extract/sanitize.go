package extract

import (
	"strings"
	"unicode/utf8"
)

// sanitize removes NUL bytes, collapses intra-line whitespace, trims excessive
// blank lines and truncates the result to maxLen bytes at a rune boundary
func sanitize(text string, maxLen int) (string, bool) {
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	text = strings.TrimSpace(text)

	if len(text) > maxLen {
		return cutAtRuneBoundary(text, maxLen), true
	}
	return text, false
}

// cutAtRuneBoundary truncates s to at most limit bytes without splitting a
// multi-byte rune
func cutAtRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
