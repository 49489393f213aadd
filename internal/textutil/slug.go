// Package textutil provides URL slug generation and length-bounded text helpers.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// punctuation is everything but ASCII word characters, whitespace and hyphens.
	punctuation = regexp.MustCompile(`[^a-z0-9_\s-]`)
	separators  = regexp.MustCompile(`[-\s]+`)
	validSlug   = regexp.MustCompile(`^[a-z0-9_]+(-[a-z0-9_]+)*$`)
)

// Slugify follows Django's slugify: compatibility decomposition to ASCII, lowercase,
// punctuation dropped (so "don't" becomes "dont"), underscores kept, and runs of
// whitespace or hyphens collapsed into one hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = punctuation.ReplaceAllString(strings.ToLower(result), "")
	result = separators.ReplaceAllString(result, "-")

	return strings.Trim(result, "-_")
}

// IsValidSlug reports whether s could have been produced by Slugify.
func IsValidSlug(s string) bool {
	return validSlug.MatchString(s) && !strings.HasPrefix(s, "_") && !strings.HasSuffix(s, "_")
}
