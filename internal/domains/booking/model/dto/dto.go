package dto

import (
	"renthubber/internal/domains/booking/model"
	"renthubber/shared"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/timezone"
	"time"
)

type CreateBookingRequest struct {
	ListingID          string `json:"listing_id"          validate:"required"`
	HubberID           string `json:"hubber_id"           validate:"required"`
	CancellationPolicy string `json:"cancellation_policy" validate:"required,oneof=flexible moderate strict"`
	StartAt            string `json:"start_at"            validate:"required"`
	EndAt              string `json:"end_at"              validate:"required"`
	BasePriceCents     int64  `json:"base_price_cents"    validate:"required,gt=0"`
	CleaningFeeCents   int64  `json:"cleaning_fee_cents"  validate:"gte=0"`
	DepositCents       int64  `json:"deposit_cents"       validate:"gte=0"`
	WalletPaidCents    int64  `json:"wallet_paid_cents"   validate:"gte=0"`
	PaymentIntentID    string `json:"payment_intent_id"`
	InstantBook        bool   `json:"instant_book"`
}

// Period parses the rental window.
func (r CreateBookingRequest) Period() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateFormat, r.StartAt)
	if err != nil {
		return start, end, err //nolint:wrapcheck
	}

	end, err = timezone.Parse(constant.DateFormat, r.EndAt)

	return start, end, err //nolint:wrapcheck
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                  string  `json:"id"`
	ListingID           string  `json:"listing_id"`
	RenterID            string  `json:"renter_id"`
	HubberID            string  `json:"hubber_id"`
	Status              string  `json:"status"`
	CancellationPolicy  string  `json:"cancellation_policy"`
	StartAt             string  `json:"start_at"`
	EndAt               string  `json:"end_at"`
	TotalPriceCents     int64   `json:"total_price_cents"`
	BasePriceCents      int64   `json:"base_price_cents"`
	ServiceFeeCents     int64   `json:"service_fee_cents"`
	PlatformFeeCents    int64   `json:"platform_fee_cents"`
	CleaningFeeCents    int64   `json:"cleaning_fee_cents"`
	DepositCents        int64   `json:"deposit_cents"`
	WalletPaidCents     int64   `json:"wallet_paid_cents"`
	CardPaidCents       int64   `json:"card_paid_cents"`
	HubberNetCents      int64   `json:"hubber_net_cents"`
	SettlementState     string  `json:"settlement_state"`
	TransferCompleted   bool    `json:"transfer_completed"`
	TransferID          *string `json:"transfer_id,omitempty"`
	TransferCompletedAt *string `json:"transfer_completed_at,omitempty"`
	RefundPercentage    *int    `json:"refund_percentage,omitempty"`
	RefundWalletCents   int64   `json:"refund_wallet_cents"`
	RefundCardCents     int64   `json:"refund_card_cents"`
	CancelledBy         *string `json:"cancelled_by,omitempty"`
	CancelledAt         *string `json:"cancelled_at,omitempty"`
	CancellationReason  *string `json:"cancellation_reason,omitempty"`
	gDto.Metadata
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := timezone.Format(*t, constant.DateFormat)

	return &s
}

func (r *BookingResponse) FromModel(b model.Booking) {
	r.ID = b.ID
	r.ListingID = b.ListingID
	r.RenterID = b.RenterID
	r.HubberID = b.HubberID
	r.Status = string(b.Status)
	r.CancellationPolicy = string(b.CancellationPolicy)
	r.StartAt = timezone.Format(b.StartAt, constant.DateFormat)
	r.EndAt = timezone.Format(b.EndAt, constant.DateFormat)
	r.TotalPriceCents = b.TotalPriceCents.Int64()
	r.BasePriceCents = b.BasePriceCents.Int64()
	r.ServiceFeeCents = b.ServiceFeeCents.Int64()
	r.PlatformFeeCents = b.PlatformFeeCents.Int64()
	r.CleaningFeeCents = b.CleaningFeeCents.Int64()
	r.DepositCents = b.DepositCents.Int64()
	r.WalletPaidCents = b.WalletPaidCents.Int64()
	r.CardPaidCents = b.CardPaidCents.Int64()
	r.HubberNetCents = b.HubberNetCents.Int64()
	r.SettlementState = string(b.SettlementState)
	r.TransferCompleted = b.TransferCompleted
	r.TransferID = b.TransferID
	r.TransferCompletedAt = formatTime(b.TransferCompletedAt)
	r.RefundPercentage = b.RefundPercentage
	r.RefundWalletCents = b.RefundWalletCents.Int64()
	r.RefundCardCents = b.RefundCardCents.Int64()
	r.CancelledBy = b.CancelledBy
	r.CancelledAt = formatTime(b.CancelledAt)
	r.CancellationReason = b.CancellationReason
	r.Metadata.FromModel(b.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// CancellationPreview is what a cancellation would do right now.
type CancellationPreview struct {
	BookingID          string `json:"booking_id"`
	CancellationPolicy string `json:"cancellation_policy"`
	CancelledBy        string `json:"cancelled_by"`
	LeadTimeHours      int64  `json:"lead_time_hours"`
	RefundPercentage   int    `json:"refund_percentage"`
	MessageKey         string `json:"message_key"`
	RefundWalletCents  int64  `json:"refund_wallet_cents"`
	RefundCardCents    int64  `json:"refund_card_cents"`
	RefundTotalCents   int64  `json:"refund_total_cents"`
	HubberCompensation int64  `json:"hubber_compensation_cents"`
}

func (p *CancellationPreview) FromModel(b model.Booking, party model.Party, decision model.RefundDecision, refund model.Refund) {
	p.BookingID = b.ID
	p.CancellationPolicy = string(b.CancellationPolicy)
	p.CancelledBy = string(party)
	p.LeadTimeHours = int64(decision.LeadTime / time.Hour)
	p.RefundPercentage = decision.Percentage
	p.MessageKey = decision.MessageKey
	p.RefundWalletCents = refund.Wallet.Int64()
	p.RefundCardCents = refund.Card.Int64()
	p.RefundTotalCents = refund.Total.Int64()
	p.HubberCompensation = model.HubberCompensation(b.HubberNetCents, decision.Percentage).Int64()
}
