package model

import (
	payoutModel "renthubber/internal/domains/payout/model"
	"time"
)

const (
	ReportDirectory   = "reconciliation"
	ReportContentType = "application/json"
)

// Kind labels what a reconciled item is.
const (
	KindTransfer = "transfer"
	KindRefund   = "refund"
	KindPending  = "unsettled"
)

// Unresolved is a booking the reconciler could not bring to a final state.
type Unresolved struct {
	BookingID string `json:"booking_id"`
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	State     string `json:"settlement_state"`
	Reason    string `json:"reason"`
}

// Report is uploaded for operators whenever a run leaves items unresolved.
type Report struct {
	GeneratedAt time.Time                `json:"generated_at"`
	StaleBefore time.Time                `json:"stale_before"`
	Bookings    []Unresolved             `json:"bookings"`
	Payouts     []payoutModel.Unresolved `json:"payouts"`
}

func (r Report) Empty() bool {
	return len(r.Bookings) == 0 && len(r.Payouts) == 0
}

func (r Report) FileName() string {
	return "report-" + r.GeneratedAt.UTC().Format("20060102T150405Z") + ".json"
}

type ReconcileResult struct {
	Resolved       int    `json:"resolved"`
	Unresolved     int    `json:"unresolved"`
	ReportLocation string `json:"report_location,omitempty"`
}
