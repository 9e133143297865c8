package model

import (
	"fmt"
	"renthubber/shared/model"
	"renthubber/shared/money"
	"time"
)

const (
	TableName  = "payout_requests"
	EntityName = "payout request"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldStatus          = "status"
	FieldRejectionReason = "rejection_reason"
	FieldLastError       = "last_error"
	FieldAttempts        = "attempts"
	FieldProcessedBy     = "processed_by"
	FieldProcessedAt     = "processed_at"
	FieldPaidAt          = "paid_at"
	FieldStripePayoutID  = "stripe_payout_id"
	FieldRequestedAt     = "requested_at"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

const (
	EventApproved = "payout.approved"
	EventRejected = "payout.rejected"
)

// Request is a hubber's ask to move earned balance to their bank. It leaves
// pending exactly once, to approved or rejected. Processing marks an approval
// in flight.
type Request struct {
	ID              string      `db:"id"`
	UserID          string      `db:"user_id"`
	AmountCents     money.Cents `db:"amount_cents"`
	Status          Status      `db:"status"`
	RejectionReason *string     `db:"rejection_reason"`
	LastError       *string     `db:"last_error"`
	Attempts        int         `db:"attempts"`
	ProcessedBy     *string     `db:"processed_by"`
	ProcessedAt     *time.Time  `db:"processed_at"`
	PaidAt          *time.Time  `db:"paid_at"`
	StripePayoutID  *string     `db:"stripe_payout_id"`
	RequestedAt     time.Time   `db:"requested_at"`
	model.Metadata
}

// IdempotencyKey identifies one payout attempt. Attempts only advance when the
// request is released, so an unknown outcome is replayed under the same key.
func IdempotencyKey(id string, attempt int) string {
	return fmt.Sprintf("payout-%s-%d", id, attempt)
}

type Event struct {
	Type        string    `json:"type"`
	PayoutID    string    `json:"payout_id"`
	UserID      string    `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	PayoutRef   string    `json:"payout_ref,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Unresolved is an item reconciliation could not bring to a final state.
type Unresolved struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Reason string `json:"reason"`
}

type ReconcileResult struct {
	Resolved   int          `json:"resolved"`
	Unresolved []Unresolved `json:"unresolved"`
}
