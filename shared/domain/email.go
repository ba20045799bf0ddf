package domain

import (
	"regexp"
	"strings"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email Email) Email {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email Email) bool {
	return emailShape.MatchString(email)
}
