// Package money keeps every amount in integer minor units (cents) so that no
// floating point value ever reaches a balance, a refund or a transfer.
package money

import (
	"github.com/shopspring/decimal"
)

const (
	minorUnitsExponent = -2
	percentBase        = 100
)

// Cents is an amount in the minor unit of the platform currency.
type Cents int64

var hundred = decimal.NewFromInt(percentBase)

// Percent returns pct percent of c rounded half away from zero.
func (c Cents) Percent(pct decimal.Decimal) Cents {
	return Cents(decimal.NewFromInt(int64(c)).Mul(pct).Div(hundred).Round(0).IntPart())
}

// PercentInt is Percent for whole percentages.
func (c Cents) PercentInt(pct int) Cents {
	return c.Percent(decimal.NewFromInt(int64(pct)))
}

func (c Cents) Int64() int64 {
	return int64(c)
}

func (c Cents) IsPositive() bool {
	return c > 0
}

// Decimal returns the amount in major units, e.g. 1050 -> 10.50.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), minorUnitsExponent)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

func Min(a, b Cents) Cents {
	if a < b {
		return a
	}

	return b
}

// ParsePercent parses a percentage such as "7.5". Empty input yields zero.
func ParsePercent(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(value) //nolint:wrapcheck
}
