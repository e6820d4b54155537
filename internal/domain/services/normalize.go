// Package services contains the pipeline's domain logic.
package services

import (
	"strings"
	"unicode"
)

// Normalize reduces a display name to its comparable form: lowercase, with
// every non-alphanumeric rune dropped. Two names denote the same entity iff
// their normalized forms are byte-equal. Idempotent by construction.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SameEntity reports whether two display names normalize to the same form.
func SameEntity(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
