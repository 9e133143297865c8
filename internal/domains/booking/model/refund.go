package model

import (
	"fmt"
	"renthubber/shared/failure"
	"renthubber/shared/money"
)

// Payment is what the renter paid, split by channel.
type Payment struct {
	Total  money.Cents
	Wallet money.Cents
	Card   money.Cents
}

func (p Payment) validate() error {
	if p.Total < 0 || p.Wallet < 0 || p.Card < 0 {
		return failure.InvalidAmount("payment amounts must not be negative") //nolint:wrapcheck
	}

	if p.Wallet+p.Card != p.Total {
		return failure.InvalidAmount(fmt.Sprintf("wallet %s plus card %s does not equal total %s", p.Wallet, p.Card, p.Total)) //nolint:wrapcheck
	}

	return nil
}

// Refund is the amount to reverse on each channel.
type Refund struct {
	Percentage int
	Wallet     money.Cents
	Card       money.Cents
	Total      money.Cents
}

// CalculateRefund splits pct percent of the total back to the wallet first and
// the card for the remainder. Wallet + Card always equals Total and neither
// exceeds what was paid on that channel.
func CalculateRefund(payment Payment, pct int) (Refund, error) {
	if pct < 0 || pct > FullRefundPercentage {
		return Refund{}, failure.InvalidAmount(fmt.Sprintf("refund percentage %d is outside 0..100", pct)) //nolint:wrapcheck
	}

	if err := payment.validate(); err != nil {
		return Refund{}, err
	}

	total := payment.Total.PercentInt(pct)
	wallet := money.Min(payment.Wallet, total)

	return Refund{
		Percentage: pct,
		Wallet:     wallet,
		Card:       total - wallet,
		Total:      total,
	}, nil
}

// HubberCompensation is what the hubber keeps when the renter is refunded pct
// percent: the whole net unless the refund is full.
func HubberCompensation(hubberNet money.Cents, pct int) money.Cents {
	if pct >= FullRefundPercentage {
		return 0
	}

	return hubberNet
}
