package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limits on free text
const (
	MaxTextLength  = 4000
	MaxNameLength  = 60
	MaxPhoneLength = 32
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks for something@something.tld without whitespace
func ValidateEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

func NormalizePhone(phone string) string {
	return TrimAndLimit(phone, MaxPhoneLength)
}

// TrimAndLimit trims whitespace and cuts s to at most max runes
func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && utf8.RuneCountInString(s) > max {
		runes := []rune(s)
		return strings.TrimSpace(string(runes[:max]))
	}
	return s
}

// Text trims a comment or reply body and reports whether anything is left
func Text(s string) (string, bool) {
	s = TrimAndLimit(s, MaxTextLength)
	return s, s != ""
}

// Name trims a display name, falling back when empty
func Name(s, fallback string) string {
	if s = TrimAndLimit(s, MaxNameLength); s != "" {
		return s
	}
	return fallback
}

// ItemID reports whether s is usable as a reading item id: 1 to 128 of [A-Za-z0-9_.-]
func ItemID(s string) bool {
	if s == "" || len(s) > 128 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
