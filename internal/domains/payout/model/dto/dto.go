package dto

import (
	"renthubber/internal/domains/payout/model"
	"renthubber/shared"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/timezone"
	"time"
)

type CreatePayoutRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

type RejectPayoutRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type PayoutResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	AmountCents     int64   `json:"amount_cents"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	LastError       *string `json:"last_error,omitempty"`
	Attempts        int     `json:"attempts"`
	ProcessedBy     *string `json:"processed_by,omitempty"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`
	StripePayoutID  *string `json:"stripe_payout_id,omitempty"`
	RequestedAt     string  `json:"requested_at"`
	gDto.Metadata
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := timezone.Format(*t, constant.DateFormat)

	return &s
}

func (r *PayoutResponse) FromModel(p model.Request) {
	r.ID = p.ID
	r.UserID = p.UserID
	r.AmountCents = p.AmountCents.Int64()
	r.Status = string(p.Status)
	r.RejectionReason = p.RejectionReason
	r.LastError = p.LastError
	r.Attempts = p.Attempts
	r.ProcessedBy = p.ProcessedBy
	r.ProcessedAt = formatTime(p.ProcessedAt)
	r.PaidAt = formatTime(p.PaidAt)
	r.StripePayoutID = p.StripePayoutID
	r.RequestedAt = timezone.Format(p.RequestedAt, constant.DateFormat)
	r.Metadata.FromModel(p.Metadata)
}

type GetPayoutsResponse struct {
	Payouts   []PayoutResponse `json:"payouts"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetPayoutsResponse) FromModels(models []model.Request, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payouts = make([]PayoutResponse, len(models))
	for i, mod := range models {
		r.Payouts[i].FromModel(mod)
	}
}
