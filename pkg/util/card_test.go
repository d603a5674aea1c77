package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain digits", "4242424242424242", "4242 4242 4242 4242"},
		{"already grouped", "4242 4242 4242 4242", "4242 4242 4242 4242"},
		{"caps at 16 digits", "42424242424242429999", "4242 4242 4242 4242"},
		{"partial entry", "42424", "4242 4"},
		{"strips junk", "4242-4242", "4242 4242"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCardNumber(tt.input))
		})
	}
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "Card ending in 4242", MaskCardNumber("4242 4242 4242 4242"))
	assert.Equal(t, "Card ending in 1234", MaskCardNumber("1234"))
	assert.Equal(t, "Card", MaskCardNumber("12"))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "09/26", FormatExpiry("0926"))
	assert.Equal(t, "09/26", FormatExpiry("09/26"))
	assert.Equal(t, "09", FormatExpiry("09"))
	assert.Equal(t, "09/26", FormatExpiry("09269"))
}

func TestParseExpiry(t *testing.T) {
	month, year, err := ParseExpiry("09/26")
	require.NoError(t, err)
	assert.Equal(t, 9, month)
	assert.Equal(t, 26, year)

	_, _, err = ParseExpiry("13/30")
	assert.Error(t, err)

	_, _, err = ParseExpiry("00/30")
	assert.Error(t, err)

	_, _, err = ParseExpiry("0926")
	assert.Error(t, err)
}

func TestExpiryInPast(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	assert.True(t, ExpiryInPast(1, 20, now))
	assert.True(t, ExpiryInPast(7, 26, now))
	assert.False(t, ExpiryInPast(8, 26, now))
	assert.False(t, ExpiryInPast(9, 26, now))
	assert.False(t, ExpiryInPast(1, 30, now))
}

func TestIsValidCVV(t *testing.T) {
	assert.True(t, IsValidCVV("123"))
	assert.True(t, IsValidCVV("1234"))
	assert.False(t, IsValidCVV("12"))
	assert.False(t, IsValidCVV("12345"))
	assert.False(t, IsValidCVV("12a"))
}
