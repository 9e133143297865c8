package dto

import (
	"renthubber/infras/stripe"
	userModel "renthubber/internal/domains/user/model"
	"renthubber/shared/constant"
	"renthubber/shared/timezone"
)

type OnboardingResponse struct {
	AccountID string `json:"account_id"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

func (r *OnboardingResponse) FromModel(accountID string, link stripe.OnboardingLink) {
	r.AccountID = accountID
	r.URL = link.URL
	r.ExpiresAt = timezone.Format(link.ExpiresAt, constant.DateFormat)
}

type StatusResponse struct {
	HasAccount     bool   `json:"has_account"`
	AccountID      string `json:"account_id,omitempty"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
	Ready          bool   `json:"ready"`
}

func (r *StatusResponse) FromModel(user userModel.User) {
	r.HasAccount = user.HasConnectedAccount()
	r.AccountID = user.ConnectedAccount()
	r.ChargesEnabled = user.ChargesEnabled
	r.PayoutsEnabled = user.PayoutsEnabled
	r.Ready = user.ChargesEnabled && user.PayoutsEnabled
}
