package util

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[0-9\s()+-]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// IsValidEmail checks the basic local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts digits and common phone punctuation.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidZipCode accepts 5-digit or 5+4 US ZIP codes.
func IsValidZipCode(zip string) bool {
	return zipPattern.MatchString(zip)
}
