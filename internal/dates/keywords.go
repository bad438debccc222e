// Package dates rewrites relative date keywords into absolute dates so the
// downstream extractor only ever sees ISO calendar dates.
package dates

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// keyword phrases in priority order. "day after tomorrow" must come
// before "tomorrow" or the shorter phrase would clobber the longer one.
var keywords = []struct {
	phrase string
	offset int
}{
	{"day after tomorrow", 2},
	{"tomorrow", 1},
	{"today", 0},
}

// ResolveKeywords substitutes the first matching relative date keyword
// with the ISO date it resolves to, relative to today. At most one
// substitution is performed; the rest of the text is preserved verbatim.
// Matching is case-insensitive.
func ResolveKeywords(text string, today time.Time) string {
	lower := lowerASCII(text)
	for _, kw := range keywords {
		idx := strings.Index(lower, kw.phrase)
		if idx < 0 {
			continue
		}
		resolved := today.AddDate(0, 0, kw.offset).Format(isoDate)
		return text[:idx] + resolved + text[idx+len(kw.phrase):]
	}
	return text
}

// lowerASCII folds ASCII letters only. The keywords are pure ASCII, and
// full Unicode lowering can change byte lengths (e.g. 'İ' becomes two
// runes), which would break the offsets used to slice the original text.
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
