package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds compatibility characters (NFKC), lowercases the text and collapses every
// whitespace run into a single space. All matchers compare normalized text only.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(norm.NFKC.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// Clean trims s and collapses whitespace inside each line while keeping line breaks.
func Clean(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ContainsAny reports the first needle found in the normalized haystack.
// Needles are compared after normalization; the returned value keeps the caller's casing.
func ContainsAny(haystack string, needles []string) (string, bool) {
	text := Normalize(haystack)
	if text == "" {
		return "", false
	}
	for _, needle := range needles {
		n := Normalize(needle)
		if n == "" {
			continue
		}
		if strings.Contains(text, n) {
			return needle, true
		}
	}
	return "", false
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
