package app

import (
	"math"
	"strings"
	"unicode"
)

const maxSlugLength = 80

// Slugify converts a campaign title to a URL-friendly slug: lowercase,
// non-word characters stripped, runs of whitespace/underscores/dashes
// collapsed to a single dash, trimmed, and capped at 80 characters.
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			b.WriteRune(' ')
		}
	}

	parts := strings.Fields(b.String())
	slug := strings.Join(parts, "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

// MajorToCents converts an amount in major currency units to cents by
// truncation. Flooring, never rounding, is the platform-wide policy for
// major-to-minor conversion.
func MajorToCents(major float64) int64 {
	if major <= 0 {
		return 0
	}
	return int64(math.Floor(major * 100))
}
