package textutil

import "unicode/utf8"

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// Truncate shortens s to at most max characters. Longer strings keep their first
// max-3 characters followed by an ellipsis, so the result is exactly max long.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	keep := max - utf8.RuneCountInString(Ellipsis)
	if keep <= 0 {
		return string([]rune(Ellipsis)[:max])
	}
	return string([]rune(s)[:keep]) + Ellipsis
}
