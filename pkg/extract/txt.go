package extract

import (
	"strings"
	"unicode/utf8"
)

// extractTXT decodes a plain text file as UTF-8, falling back to Latin-1
// when the content is not valid UTF-8. Latin-1 decoding cannot fail.
func extractTXT(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(rune(b))
	}
	return sb.String(), nil
}
