package money_test

import (
	"testing"

	"renthubber/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCents_Percent(t *testing.T) {
	tests := []struct {
		name     string
		amount   money.Cents
		pct      string
		expected money.Cents
	}{
		{name: "whole percentage", amount: 10000, pct: "50", expected: 5000},
		{name: "fractional percentage", amount: 10000, pct: "7.5", expected: 750},
		{name: "rounds half away from zero", amount: 333, pct: "50", expected: 167},
		{name: "rounds down below half", amount: 101, pct: "10", expected: 10},
		{name: "zero percent", amount: 999, pct: "0", expected: 0},
		{name: "full amount", amount: 12345, pct: "100", expected: 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.amount.Percent(decimal.RequireFromString(tt.pct)))
		})
	}
}

func TestCents_PercentInt(t *testing.T) {
	assert.Equal(t, money.Cents(3500), money.Cents(7000).PercentInt(50))
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "10.50", money.Cents(1050).String())
	assert.Equal(t, "0.07", money.Cents(7).String())
}

func TestMin(t *testing.T) {
	assert.Equal(t, money.Cents(3), money.Min(3, 7))
	assert.Equal(t, money.Cents(3), money.Min(7, 3))
}

func TestParsePercent(t *testing.T) {
	pct, err := money.ParsePercent("12.25")
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.RequireFromString("12.25")))

	pct, err = money.ParsePercent("")
	require.NoError(t, err)
	assert.True(t, pct.IsZero())

	_, err = money.ParsePercent("abc")
	assert.Error(t, err)
}
