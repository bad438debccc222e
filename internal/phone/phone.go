// Package phone validates and canonicalizes Indian mobile numbers.
package phone

import "strings"

// Normalize reduces a raw phone string to its 10-digit national form.
// It keeps digits and a leading +, strips a +91 country prefix and a
// leading trunk 0, and accepts the result only if exactly 10 digits
// remain. The boolean reports validity; an invalid input is not an
// error, just absence.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	s = sanitize(s)
	s = strings.TrimPrefix(s, "+91")
	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(s, "0") {
		s = s[1:]
	}

	if len(s) != 10 || !allDigits(s) {
		return "", false
	}
	return s, true
}

// sanitize keeps digits plus a leading +.
func sanitize(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
