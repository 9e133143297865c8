package model

import "time"

const (
	EventCompleted = "booking.completed"
	EventSettled   = "booking.settled"
	EventCancelled = "booking.cancelled"
)

// Event is published on status changes that move money. Key is the booking id.
type Event struct {
	Type             string    `json:"type"`
	BookingID        string    `json:"booking_id"`
	RenterID         string    `json:"renter_id"`
	HubberID         string    `json:"hubber_id"`
	AmountCents      int64     `json:"amount_cents,omitempty"`
	TransferID       string    `json:"transfer_id,omitempty"`
	RefundPercentage *int      `json:"refund_percentage,omitempty"`
	RefundWallet     int64     `json:"refund_wallet_cents,omitempty"`
	RefundCard       int64     `json:"refund_card_cents,omitempty"`
	CancelledBy      string    `json:"cancelled_by,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, b Booking, now time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		RenterID:   b.RenterID,
		HubberID:   b.HubberID,
		OccurredAt: now,
	}
}
