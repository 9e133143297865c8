package model

import (
	"renthubber/shared/money"
	"time"
)

const (
	TableName  = "transactions"
	EntityName = "transaction"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldBookingID = "booking_id"
	FieldPayoutID  = "payout_id"
	FieldType      = "type"
	FieldCreatedAt = "created_at"
)

// Account names the user balance column a posting moves.
type Account string

const (
	AccountBalance Account = "balance"
	AccountWallet  Account = "wallet"
)

// Column returns the users column holding the running total for a.
func (a Account) Column() string {
	if a == AccountWallet {
		return "wallet_balance_cents"
	}

	return "balance_cents"
}

type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

type Type string

const (
	TypeBookingPayout      Type = "booking_payout"
	TypeRefund             Type = "refund"
	TypePayout             Type = "payout"
	TypeWalletPayment      Type = "wallet_payment"
	TypeHubberCompensation Type = "hubber_compensation"
	TypeDepositReturn      Type = "deposit_return"
)

// Transaction is an append-only ledger entry. Rows are never updated.
type Transaction struct {
	ID          string      `db:"id"`
	UserID      string      `db:"user_id"`
	Account     Account     `db:"account"`
	Direction   Direction   `db:"direction"`
	AmountCents money.Cents `db:"amount_cents"`
	Type        Type        `db:"type"`
	BookingID   *string     `db:"booking_id"`
	PayoutID    *string     `db:"payout_id"`
	ExternalRef *string     `db:"external_ref"`
	Description string      `db:"description"`
	CreatedAt   time.Time   `db:"created_at"`
}

// Posting is a balance movement to apply together with its ledger entry.
type Posting struct {
	UserID      string
	Account     Account
	Direction   Direction
	Amount      money.Cents
	Type        Type
	BookingID   string
	PayoutID    string
	ExternalRef string
	Description string
}

// Delta is the signed change Posting applies to the balance column.
func (p Posting) Delta() int64 {
	if p.Direction == DirectionDebit {
		return -p.Amount.Int64()
	}

	return p.Amount.Int64()
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func (p Posting) ToModel(id string, now time.Time) Transaction {
	return Transaction{
		ID:          id,
		UserID:      p.UserID,
		Account:     p.Account,
		Direction:   p.Direction,
		AmountCents: p.Amount,
		Type:        p.Type,
		BookingID:   optional(p.BookingID),
		PayoutID:    optional(p.PayoutID),
		ExternalRef: optional(p.ExternalRef),
		Description: p.Description,
		CreatedAt:   now,
	}
}
