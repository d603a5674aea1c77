package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 18.40, RoundCents(18.3976))
	assert.Equal(t, 18.39, RoundCents(18.394))
	assert.Equal(t, 0.0, RoundCents(0))
}

func TestTaxOn(t *testing.T) {
	// 8% of 229.97 is 18.3976, rounded to cents.
	assert.Equal(t, 18.40, TaxOn(229.97, 0.08))
	assert.Equal(t, 8.00, TaxOn(99.99, 0.08))
	assert.Equal(t, 0.0, TaxOn(0, 0.08))
}

func TestSumToCents(t *testing.T) {
	// Summing through decimals avoids float drift: 49.99*2 + 129.99.
	assert.Equal(t, 229.97, SumToCents(99.98, 129.99))
	assert.Equal(t, 248.37, SumToCents(229.97, 0, 18.40))
	assert.Equal(t, 0.0, SumToCents())
}
