package util

import "github.com/shopspring/decimal"

// RoundCents rounds a money amount to two decimal places.
func RoundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// TaxOn computes the tax on a subtotal at the given rate, rounded to cents.
func TaxOn(subtotal, rate float64) float64 {
	return decimal.NewFromFloat(subtotal).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		InexactFloat64()
}

// SumToCents adds money amounts and rounds the result to cents.
func SumToCents(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}
