package model

import (
	"fmt"
	"renthubber/shared/failure"
	"time"
)

type CancellationPolicy string

const (
	PolicyFlexible CancellationPolicy = "flexible"
	PolicyModerate CancellationPolicy = "moderate"
	PolicyStrict   CancellationPolicy = "strict"
)

// Message keys returned with each refund decision.
const (
	MessageFullRefund      = "cancellation.full_refund"
	MessagePartialRefund   = "cancellation.partial_refund"
	MessageNoRefund        = "cancellation.no_refund"
	MessageHubberCancelled = "cancellation.hubber_cancelled"
)

const (
	FullRefundPercentage    = 100
	PartialRefundPercentage = 50
)

type tier struct {
	full    time.Duration
	partial time.Duration
}

// Lower bounds are inclusive. A zero partial bound means the tier has no 50% band.
var tiers = map[CancellationPolicy]tier{
	PolicyFlexible: {full: 24 * time.Hour},
	PolicyModerate: {full: 5 * 24 * time.Hour, partial: 24 * time.Hour},
	PolicyStrict:   {full: 7 * 24 * time.Hour, partial: 3 * 24 * time.Hour},
}

func (p CancellationPolicy) Valid() bool {
	_, ok := tiers[p]

	return ok
}

type RefundDecision struct {
	Percentage int
	MessageKey string
	LeadTime   time.Duration
}

// Evaluate maps the time left before the rental starts to a refund percentage.
func (p CancellationPolicy) Evaluate(lead time.Duration) (RefundDecision, error) {
	t, ok := tiers[p]
	if !ok {
		return RefundDecision{}, failure.InvalidState(fmt.Sprintf("unknown cancellation policy %q", p)) //nolint:wrapcheck
	}

	decision := RefundDecision{LeadTime: lead, MessageKey: MessageNoRefund}

	switch {
	case lead < 0:
	case lead >= t.full:
		decision.Percentage = FullRefundPercentage
		decision.MessageKey = MessageFullRefund
	case t.partial > 0 && lead >= t.partial:
		decision.Percentage = PartialRefundPercentage
		decision.MessageKey = MessagePartialRefund
	}

	return decision, nil
}

// DecideRefund evaluates a cancellation of b by party at now. Cancellations by
// the hubber or by an admin always refund the renter in full.
func DecideRefund(b Booking, party Party, now time.Time) (RefundDecision, error) {
	lead := b.StartAt.Sub(now)

	if party == PartyHubber || party == PartyAdmin {
		if !b.CancellationPolicy.Valid() {
			return RefundDecision{}, failure.InvalidState(fmt.Sprintf("unknown cancellation policy %q", b.CancellationPolicy)) //nolint:wrapcheck
		}

		return RefundDecision{Percentage: FullRefundPercentage, MessageKey: MessageHubberCancelled, LeadTime: lead}, nil
	}

	return b.CancellationPolicy.Evaluate(lead)
}
