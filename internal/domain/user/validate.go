package user

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const usernameSymbols = `!@#$%^&*(),.?":{}|<>`

var (
	usernameBody = regexp.MustCompile(`^[^\s\p{Z}_]+$`)
	mobileRe     = regexp.MustCompile(`^[0-9]{10}$`)
	emailRe      = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)
)

// Messages shown by the client next to a rejected field.
const (
	UsernameHint = "Username must be at least 8 characters, no underscores, and contain a special character."
	MobileHint   = "Mobile number must contain exactly 10 digits."
	EmailHint    = "Invalid email address."
)

// ValidUsername reports whether s has at least 8 characters, contains no
// whitespace or underscore, and carries at least one symbol from usernameSymbols.
func ValidUsername(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	if !usernameBody.MatchString(s) {
		return false
	}
	return strings.ContainsAny(s, usernameSymbols)
}

func ValidMobile(s string) bool {
	return mobileRe.MatchString(s)
}

// ValidEmail is a loose local@domain.tld shape check, not RFC 5322.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
