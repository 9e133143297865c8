package dto

import (
	"fmt"
	"renthubber/internal/domains/fee/model"
	"renthubber/shared"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	gModel "renthubber/shared/model"
	"renthubber/shared/money"
	"renthubber/shared/timezone"

	"github.com/shopspring/decimal"
)

type ResolutionResponse struct {
	Role       string  `json:"role"`
	Percent    string  `json:"percent"`
	FeesWaived bool    `json:"fees_waived"`
	OverrideID *string `json:"override_id,omitempty"`
}

func (r *ResolutionResponse) FromModel(res model.Resolution) {
	r.Role = string(res.Role)
	r.Percent = res.Percent.String()
	r.FeesWaived = res.FeesWaived

	if res.OverrideID != "" {
		id := res.OverrideID
		r.OverrideID = &id
	}
}

type CreateOverrideRequest struct {
	UserID               string `json:"user_id"                validate:"required"`
	FeesDisabled         bool   `json:"fees_disabled"`
	CustomRenterFee      string `json:"custom_renter_fee"      validate:"omitempty,percentage"`
	CustomHubberFee      string `json:"custom_hubber_fee"      validate:"omitempty,percentage"`
	ValidFrom            string `json:"valid_from"             validate:"required"`
	ValidUntil           string `json:"valid_until"            validate:"required"`
	MaxTransactionAmount *int64 `json:"max_transaction_amount" validate:"omitempty,gt=0"`
	Priority             int    `json:"priority"`
	Reason               string `json:"reason"                 validate:"required"`
}

func nullPercent(value string) (decimal.NullDecimal, error) {
	if value == "" {
		return decimal.NullDecimal{}, nil
	}

	pct, err := money.ParsePercent(value)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid percentage %q: %w", value, err)
	}

	return decimal.NewNullDecimal(pct), nil
}

func (r CreateOverrideRequest) ToModel(id, admin string) (model.Override, error) {
	from, err := timezone.Parse(constant.DateFormat, r.ValidFrom)
	if err != nil {
		return model.Override{}, fmt.Errorf("invalid valid_from: %w", err)
	}

	until, err := timezone.Parse(constant.DateFormat, r.ValidUntil)
	if err != nil {
		return model.Override{}, fmt.Errorf("invalid valid_until: %w", err)
	}

	if until.Before(from) {
		return model.Override{}, fmt.Errorf("valid_until is before valid_from")
	}

	renterFee, err := nullPercent(r.CustomRenterFee)
	if err != nil {
		return model.Override{}, err
	}

	hubberFee, err := nullPercent(r.CustomHubberFee)
	if err != nil {
		return model.Override{}, err
	}

	override := model.Override{
		ID:              id,
		UserID:          r.UserID,
		FeesDisabled:    r.FeesDisabled,
		CustomRenterFee: renterFee,
		CustomHubberFee: hubberFee,
		ValidFrom:       from,
		ValidUntil:      until,
		Priority:        r.Priority,
		Status:          model.StatusActive,
		Reason:          r.Reason,
		Metadata:        gModel.NewMetadata(admin, timezone.Now()),
	}

	if r.MaxTransactionAmount != nil {
		limit := money.Cents(*r.MaxTransactionAmount)
		override.MaxTransactionAmount = &limit
	}

	return override, nil
}

type OverrideResponse struct {
	ID                       string  `json:"id"`
	UserID                   string  `json:"user_id"`
	FeesDisabled             bool    `json:"fees_disabled"`
	CustomRenterFee          *string `json:"custom_renter_fee"`
	CustomHubberFee          *string `json:"custom_hubber_fee"`
	ValidFrom                string  `json:"valid_from"`
	ValidUntil               string  `json:"valid_until"`
	MaxTransactionAmount     *int64  `json:"max_transaction_amount"`
	CurrentTransactionAmount int64   `json:"current_transaction_amount"`
	Priority                 int     `json:"priority"`
	Status                   string  `json:"status"`
	Reason                   string  `json:"reason"`
	gDto.Metadata
}

func percentString(value decimal.NullDecimal) *string {
	if !value.Valid {
		return nil
	}

	s := value.Decimal.String()

	return &s
}

func (r *OverrideResponse) FromModel(o model.Override) {
	r.ID = o.ID
	r.UserID = o.UserID
	r.FeesDisabled = o.FeesDisabled
	r.CustomRenterFee = percentString(o.CustomRenterFee)
	r.CustomHubberFee = percentString(o.CustomHubberFee)
	r.ValidFrom = timezone.Format(o.ValidFrom, constant.DateFormat)
	r.ValidUntil = timezone.Format(o.ValidUntil, constant.DateFormat)
	r.CurrentTransactionAmount = o.CurrentTransactionAmount.Int64()
	r.Priority = o.Priority
	r.Status = string(o.Status)
	r.Reason = o.Reason
	r.Metadata.FromModel(o.Metadata)

	if o.MaxTransactionAmount != nil {
		limit := o.MaxTransactionAmount.Int64()
		r.MaxTransactionAmount = &limit
	}
}

type GetOverridesResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetOverridesResponse) FromModels(models []model.Override, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Overrides = make([]OverrideResponse, len(models))
	for i, mod := range models {
		r.Overrides[i].FromModel(mod)
	}
}
