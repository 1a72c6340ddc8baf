package typeahead

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison form of s: combining marks removed,
// case folded, surrounding whitespace trimmed and inner whitespace collapsed
// to single spaces. It is used both for matching and as the cache key of
// remote queries, so "México " and "mexico" normalize identically.
//
// Blank input normalizes to the empty string.
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	// Transformers are stateful, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// IsBlank reports whether s contains nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
