// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the base currency with full precision.
// Uses decimal.Decimal to avoid floating-point errors; amounts are only
// rounded at display time, never during arithmetic.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// NewMoneyFromInt creates a Money value from whole units.
func NewMoneyFromInt(n int64) Money {
	return decimal.NewFromInt(n)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns the zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MulInt multiplies a Money value by an integer quantity.
// Line subtotals are always quantity × unit price, so this is the only
// arithmetic a line item ever needs.
func MulInt(m Money, n int) Money {
	return m.Mul(decimal.NewFromInt(int64(n)))
}

// IsPositive reports whether m is strictly greater than zero.
func IsPositive(m Money) bool {
	return m.Sign() > 0
}

// IsNegative reports whether m is strictly less than zero.
func IsNegative(m Money) bool {
	return m.Sign() < 0
}
