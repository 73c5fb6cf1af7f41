package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesledger/internal/core/types"
)

func TestConvert(t *testing.T) {
	rate := types.NewMoneyFromInt(88000)

	got := Convert(types.MustMoney("100"), rate)
	assert.True(t, got.Equal(types.NewMoneyFromInt(8800000)))

	// no rounding at conversion time
	got = Convert(types.MustMoney("0.005"), rate)
	assert.True(t, got.Equal(types.NewMoneyFromInt(440)))
}

func TestFormatDual(t *testing.T) {
	rate := types.NewMoneyFromInt(88000)

	tests := []struct {
		name      string
		amount    string
		base      string
		secondary string
	}{
		{"round amount", "100", "100.00", "8,800,000"},
		{"fractional base truncates secondary", "10.567", "10.57", "929,896"},
		{"zero", "0", "0.00", "0"},
		{"small amount", "0.01", "0.01", "880"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dual := FormatDual(types.MustMoney(tt.amount), rate)
			assert.Equal(t, tt.base, dual.Base)
			assert.Equal(t, tt.secondary, dual.Secondary)
		})
	}
}

func TestFormatSecondary_TruncatesNotRounds(t *testing.T) {
	// 0.9999 stays below 1 whole unit
	assert.Equal(t, "0", FormatSecondary(types.MustMoney("0.9999")))
	assert.Equal(t, "1,234", FormatSecondary(types.MustMoney("1234.999")))
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"8800000", "8,800,000"},
		{"1234567.89", "1,234,567.89"},
		{"-1234.50", "-1,234.50"},
		{"-999", "-999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupDigits(tt.in), "input %s", tt.in)
	}
}

func TestSelection_Valid(t *testing.T) {
	assert.True(t, SelectionBase.Valid())
	assert.True(t, SelectionSecondary.Valid())
	assert.False(t, Selection("").Valid())
	assert.False(t, Selection("crypto").Valid())
}
