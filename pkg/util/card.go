package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StripCardNumber removes everything but digits from a card number.
func StripCardNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber normalizes a card number into groups of 4 digits,
// capped at 16 digits.
func FormatCardNumber(number string) string {
	digits := StripCardNumber(number)
	if len(digits) > 16 {
		digits = digits[:16]
	}

	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}

// MaskCardNumber returns the non-sensitive display descriptor recorded on
// orders, e.g. "Card ending in 1234".
func MaskCardNumber(number string) string {
	digits := StripCardNumber(number)
	if len(digits) < 4 {
		return "Card"
	}
	return fmt.Sprintf("Card ending in %s", digits[len(digits)-4:])
}

// FormatExpiry normalizes expiry input into MM/YY.
func FormatExpiry(expiry string) string {
	digits := StripCardNumber(expiry)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) > 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// ParseExpiry splits an MM/YY expiry into month and two-digit year.
func ParseExpiry(expiry string) (month, year int, err error) {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid expiry format: %q", expiry)
	}
	month, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid expiry month: %q", parts[0])
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid expiry year: %q", parts[1])
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("expiry month out of range: %d", month)
	}
	return month, year, nil
}

// ExpiryInPast reports whether MM/YY is before the month of now.
func ExpiryInPast(month, year int, now time.Time) bool {
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear {
		return true
	}
	return year == currentYear && month < currentMonth
}

// IsValidCVV accepts 3 or 4 digit CVV codes.
func IsValidCVV(cvv string) bool {
	if len(cvv) < 3 || len(cvv) > 4 {
		return false
	}
	return StripCardNumber(cvv) == cvv
}
