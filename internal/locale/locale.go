// Package locale normalizes locale codes and repairs key segments so they are
// safe to use as nested-document identifiers.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// FallbackKey replaces empty or whitespace-only key segments.
const FallbackKey = "default_key"

// DigitPrefix is prepended to key segments that start with a digit.
const DigitPrefix = "k_"

// Normalize lowercases a locale code and converts the underscore spelling to
// the hyphenated one ("EN_US" -> "en-us"). Idempotent.
func Normalize(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, "_", "-"))
}

// CheckTag reports whether a locale code parses as a BCP 47 tag. Callers
// treat a failure as a soft warning, never as fatal.
func CheckTag(code string) error {
	if _, err := language.Parse(Normalize(code)); err != nil {
		return fmt.Errorf("locale %q is not a recognized language tag: %w", code, err)
	}
	return nil
}

// SanitizeSegment repairs a key segment so it is a valid identifier path.
// Empty or whitespace-only input becomes FallbackKey. Characters outside
// [A-Za-z0-9_.] become underscores, and a leading digit gets DigitPrefix.
// Idempotent.
func SanitizeSegment(s string) string {
	if strings.TrimSpace(s) == "" {
		return FallbackKey
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := b.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = DigitPrefix + out
	}
	return out
}

// Escape prepares a value for embedding in a single-quoted string literal.
// Non-string values are stringified as-is. Single quotes are backslash
// escaped, and both real newlines and literal "<br/>" tags become the
// two-character sequence \n.
func Escape(v any) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "<br/>", `\n`)
	return s
}
