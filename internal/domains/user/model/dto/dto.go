package dto

import (
	"renthubber/internal/domains/user/model"
	gDto "renthubber/shared/dto"
)

type ProfileResponse struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	HasPaymentAccount  bool   `json:"has_payment_account"`
	ChargesEnabled     bool   `json:"charges_enabled"`
	PayoutsEnabled     bool   `json:"payouts_enabled"`
	BalanceCents       int64  `json:"balance_cents"`
	WalletBalanceCents int64  `json:"wallet_balance_cents"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Role = user.Role
	r.HasPaymentAccount = user.HasConnectedAccount()
	r.ChargesEnabled = user.ChargesEnabled
	r.PayoutsEnabled = user.PayoutsEnabled
	r.BalanceCents = user.BalanceCents.Int64()
	r.WalletBalanceCents = user.WalletBalanceCents.Int64()
	r.Metadata.FromModel(user.Metadata)
}
