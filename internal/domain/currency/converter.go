// Package currency converts and formats monetary values between the base
// currency and the single configured secondary currency.
//
// Conversion is stateless: the exchange rate is always an explicit parameter
// supplied by the tenant settings collaborator. Keeping no rate state here
// rules out stale-cache bugs and makes every function trivially testable.
package currency

import (
	"strings"

	"salesledger/internal/core/types"
)

// DefaultRate is the fallback base-to-secondary multiplier used when the
// tenant configuration has no rate. Display conversion must never block a
// financial transaction, so a missing rate degrades to this constant instead
// of failing.
var DefaultRate = types.NewMoneyFromInt(88000)

// Selection names which currency a transaction was presented in.
// Informational only: stored amounts are always base-currency.
type Selection string

const (
	SelectionBase      Selection = "base"
	SelectionSecondary Selection = "secondary"
)

// Valid reports whether s is a known selection.
func (s Selection) Valid() bool {
	return s == SelectionBase || s == SelectionSecondary
}

// DualAmount is one monetary value rendered in both currencies.
// Both strings are derived from the same input, so they can never drift
// apart between calls.
type DualAmount struct {
	Base      string `json:"base"`
	Secondary string `json:"secondary"`
}

// Convert returns baseAmount × rate. No rounding is applied here; rounding is
// a display concern handled by FormatDual.
func Convert(baseAmount, rate types.Money) types.Money {
	return baseAmount.Mul(rate)
}

// FormatDual renders a base-currency amount in both currencies.
// The base currency keeps two decimal places; the secondary currency has no
// minor unit in this domain, so it is truncated to zero decimal places.
func FormatDual(baseAmount, rate types.Money) DualAmount {
	return DualAmount{
		Base:      FormatBase(baseAmount),
		Secondary: FormatSecondary(Convert(baseAmount, rate)),
	}
}

// FormatBase renders a base-currency amount with two decimal places and
// thousands grouping.
func FormatBase(amount types.Money) string {
	return groupDigits(amount.StringFixed(2))
}

// FormatSecondary renders a secondary-currency amount truncated to whole
// units, with thousands grouping.
func FormatSecondary(amount types.Money) string {
	return groupDigits(amount.Truncate(0).StringFixed(0))
}

// groupDigits inserts comma separators into the integer part of a plain
// decimal string ("8800000" -> "8,800,000", "-1234.50" -> "-1,234.50").
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	frac := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		frac = s[dot:]
	}

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}
