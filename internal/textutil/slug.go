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
	// Decompose accented characters and drop the combining marks,
	// e.g. "José" -> "Jose".
	asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	separators   = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a player name to its canonical comparison key.
// Two names refer to the same player exactly when their slugs are equal;
// an empty slug never matches anything, including another empty slug.
//
//	Slugify("José Ramírez") == "jose-ramirez"
//	Slugify("Mike Trout Jr.") == "mike-trout-jr"
//	Slugify("") == ""
//
// The function is pure and idempotent.
func Slugify(value string) string {
	if value == "" {
		return ""
	}

	folded, _, err := transform.String(asciiFold, value)
	if err != nil {
		// Fall back to the raw input; the character filter below still
		// guarantees a well-formed slug.
		folded = value
	}

	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = invalidChars.ReplaceAllString(folded, "")
	folded = separators.ReplaceAllString(strings.TrimSpace(folded), "-")

	return strings.Trim(folded, "-")
}

// NormalizePlayerName strips generational suffixes before slugifying, so
// "Luis Castillo Jr." and "Luis Castillo" compare equal.
func NormalizePlayerName(name string) string {
	if name == "" {
		return ""
	}

	name = suffixPattern.ReplaceAllString(strings.TrimSpace(name), "")
	return Slugify(name)
}

var suffixPattern = regexp.MustCompile(`(?i)\s+(Jr\.?|Sr\.?|II|III|IV)$`)
