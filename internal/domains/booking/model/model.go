package model

import (
	"fmt"
	"renthubber/shared/model"
	"renthubber/shared/money"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                  = "id"
	FieldRenterID            = "renter_id"
	FieldHubberID            = "hubber_id"
	FieldStatus              = "status"
	FieldSettlementState     = "settlement_state"
	FieldTransferCompleted   = "transfer_completed"
	FieldTransferID          = "transfer_id"
	FieldTransferCompletedAt = "transfer_completed_at"
	FieldRefundPercentage    = "refund_percentage"
	FieldRefundWalletCents   = "refund_wallet_cents"
	FieldRefundCardCents     = "refund_card_cents"
	FieldRefundID            = "refund_id"
	FieldRefundedAt          = "refunded_at"
	FieldProcessorAttempt    = "processor_attempt"
	FieldStatusBeforeCancel  = "status_before_cancel"
	FieldCancelledBy         = "cancelled_by"
	FieldCancelledAt         = "cancelled_at"
	FieldCancellationReason  = "cancellation_reason"
	FieldStartAt             = "start_at"
)

// Cache key prefixes shared with every writer of bookings.
const (
	CachePrefixGet  = "booking:get"
	CachePrefixList = "booking:list"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusConfirmed, StatusCancelled},
	StatusAccepted:  {StatusConfirmed, StatusActive, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted},
}

// CanTransition reports whether a booking may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Cancellable reports whether no money has been released for the booking yet.
func (s Status) Cancellable() bool {
	return s.CanTransition(StatusCancelled)
}

// SettlementState tracks the processor side of a terminal booking.
type SettlementState string

const (
	SettlementNone       SettlementState = "none"
	SettlementProcessing SettlementState = "processing"
	SettlementSettled    SettlementState = "settled"
	SettlementFailed     SettlementState = "failed"
)

// Party identifies who cancelled a booking.
type Party string

const (
	PartyRenter Party = "renter"
	PartyHubber Party = "hubber"
	PartyAdmin  Party = "admin"
)

type Booking struct {
	ID                  string             `db:"id"`
	ListingID           string             `db:"listing_id"`
	RenterID            string             `db:"renter_id"`
	HubberID            string             `db:"hubber_id"`
	Status              Status             `db:"status"`
	CancellationPolicy  CancellationPolicy `db:"cancellation_policy"`
	StartAt             time.Time          `db:"start_at"`
	EndAt               time.Time          `db:"end_at"`
	TotalPriceCents     money.Cents        `db:"total_price_cents"`
	BasePriceCents      money.Cents        `db:"base_price_cents"`
	ServiceFeeCents     money.Cents        `db:"service_fee_cents"`
	PlatformFeeCents    money.Cents        `db:"platform_fee_cents"`
	CleaningFeeCents    money.Cents        `db:"cleaning_fee_cents"`
	DepositCents        money.Cents        `db:"deposit_cents"`
	WalletPaidCents     money.Cents        `db:"wallet_paid_cents"`
	CardPaidCents       money.Cents        `db:"card_paid_cents"`
	HubberNetCents      money.Cents        `db:"hubber_net_cents"`
	PaymentIntentID     *string            `db:"payment_intent_id"`
	RenterFeeOverrideID *string            `db:"renter_fee_override_id"`
	HubberFeeOverrideID *string            `db:"hubber_fee_override_id"`
	SettlementState     SettlementState    `db:"settlement_state"`
	TransferCompleted   bool               `db:"transfer_completed"`
	TransferID          *string            `db:"transfer_id"`
	TransferCompletedAt *time.Time         `db:"transfer_completed_at"`
	RefundPercentage    *int               `db:"refund_percentage"`
	RefundWalletCents   money.Cents        `db:"refund_wallet_cents"`
	RefundCardCents     money.Cents        `db:"refund_card_cents"`
	RefundID            *string            `db:"refund_id"`
	RefundedAt          *time.Time         `db:"refunded_at"`
	ProcessorAttempt    int                `db:"processor_attempt"`
	StatusBeforeCancel  *string            `db:"status_before_cancel"`
	CancelledBy         *string            `db:"cancelled_by"`
	CancelledAt         *time.Time         `db:"cancelled_at"`
	CancellationReason  *string            `db:"cancellation_reason"`
	model.Metadata
}

// Payment is the split of what the renter paid.
func (b Booking) Payment() Payment {
	return Payment{
		Total:  b.TotalPriceCents,
		Wallet: b.WalletPaidCents,
		Card:   b.CardPaidCents,
	}
}

// PartyOf returns the side userID is on, or false when the user is not on the booking.
func (b Booking) PartyOf(userID string) (Party, bool) {
	switch userID {
	case b.RenterID:
		return PartyRenter, true
	case b.HubberID:
		return PartyHubber, true
	default:
		return "", false
	}
}

// Counterparty returns the other side of the booking from userID.
func (b Booking) Counterparty(userID string) string {
	if userID == b.HubberID {
		return b.RenterID
	}

	return b.HubberID
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

func (b Booking) PaymentIntent() string {
	return stringValue(b.PaymentIntentID)
}

func (b Booking) RenterOverride() string {
	return stringValue(b.RenterFeeOverrideID)
}

func (b Booking) HubberOverride() string {
	return stringValue(b.HubberFeeOverrideID)
}

// RefundPct is the refund percentage recorded at cancellation, zero when unset.
func (b Booking) RefundPct() int {
	if b.RefundPercentage == nil {
		return 0
	}

	return *b.RefundPercentage
}

// Payable is what the hubber is owed by transfer: the net of a completed
// booking, or the compensation kept after a partial refund.
func (b Booking) Payable() money.Cents {
	switch b.Status {
	case StatusCompleted:
		return b.HubberNetCents
	case StatusCancelled:
		if b.RefundPercentage == nil {
			return 0
		}

		return HubberCompensation(b.HubberNetCents, *b.RefundPercentage)
	default:
		return 0
	}
}

// PreviousStatus is the status a cancellation started from. Rows cancelled
// before it was recorded fall back to confirmed.
func (b Booking) PreviousStatus() Status {
	if b.StatusBeforeCancel == nil || *b.StatusBeforeCancel == "" {
		return StatusConfirmed
	}

	return Status(*b.StatusBeforeCancel)
}

// TransferIdempotencyKey identifies one transfer attempt for the booking. The
// attempt only moves on after a definite rejection, so an unknown outcome is
// retried under the same key.
func TransferIdempotencyKey(bookingID string, attempt int) string {
	return fmt.Sprintf("booking-transfer-%s-%d", bookingID, attempt)
}

// RefundIdempotencyKey identifies one card refund attempt for the booking.
func RefundIdempotencyKey(bookingID string, attempt int) string {
	return fmt.Sprintf("booking-refund-%s-%d", bookingID, attempt)
}
