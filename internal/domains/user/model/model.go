package model

import (
	"renthubber/shared/model"
	"renthubber/shared/money"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                 = "id"
	FieldEmail              = "email"
	FieldRole               = "role"
	FieldStripeAccountID    = "stripe_account_id"
	FieldChargesEnabled     = "charges_enabled"
	FieldPayoutsEnabled     = "payouts_enabled"
	FieldBalanceCents       = "balance_cents"
	FieldWalletBalanceCents = "wallet_balance_cents"
)

// User mirrors the identity provider's user plus the money the platform holds for them.
// BalanceCents is hubber earnings awaiting payout, WalletBalanceCents is renter credit.
type User struct {
	ID                 string      `db:"id"`
	Email              string      `db:"email"`
	Role               string      `db:"role"`
	StripeAccountID    *string     `db:"stripe_account_id"`
	ChargesEnabled     bool        `db:"charges_enabled"`
	PayoutsEnabled     bool        `db:"payouts_enabled"`
	BalanceCents       money.Cents `db:"balance_cents"`
	WalletBalanceCents money.Cents `db:"wallet_balance_cents"`
	model.Metadata
}

func (u User) HasConnectedAccount() bool {
	return u.StripeAccountID != nil && *u.StripeAccountID != ""
}

func (u User) ConnectedAccount() string {
	if u.StripeAccountID == nil {
		return ""
	}

	return *u.StripeAccountID
}
