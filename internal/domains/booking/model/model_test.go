package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthubber/internal/domains/booking/model"
	"renthubber/shared/failure"
	"renthubber/shared/money"
)

func TestCancellationPolicy_Evaluate(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name    string
		policy  model.CancellationPolicy
		lead    time.Duration
		wantPct int
		wantKey string
	}{
		{name: "flexible exactly 24h", policy: model.PolicyFlexible, lead: day, wantPct: 100, wantKey: model.MessageFullRefund},
		{name: "flexible 30h", policy: model.PolicyFlexible, lead: 30 * time.Hour, wantPct: 100, wantKey: model.MessageFullRefund},
		{name: "flexible just under 24h", policy: model.PolicyFlexible, lead: day - time.Second, wantPct: 0, wantKey: model.MessageNoRefund},
		{name: "flexible 2h", policy: model.PolicyFlexible, lead: 2 * time.Hour, wantPct: 0, wantKey: model.MessageNoRefund},
		{name: "moderate exactly 5 days", policy: model.PolicyModerate, lead: 5 * day, wantPct: 100, wantKey: model.MessageFullRefund},
		{name: "moderate 3 days", policy: model.PolicyModerate, lead: 3 * day, wantPct: 50, wantKey: model.MessagePartialRefund},
		{name: "moderate exactly 24h", policy: model.PolicyModerate, lead: day, wantPct: 50, wantKey: model.MessagePartialRefund},
		{name: "moderate 12h", policy: model.PolicyModerate, lead: 12 * time.Hour, wantPct: 0, wantKey: model.MessageNoRefund},
		{name: "strict exactly 7 days", policy: model.PolicyStrict, lead: 7 * day, wantPct: 100, wantKey: model.MessageFullRefund},
		{name: "strict exactly 3 days", policy: model.PolicyStrict, lead: 3 * day, wantPct: 50, wantKey: model.MessagePartialRefund},
		{name: "strict 2 days", policy: model.PolicyStrict, lead: 2 * day, wantPct: 0, wantKey: model.MessageNoRefund},
		{name: "already started", policy: model.PolicyFlexible, lead: -time.Hour, wantPct: 0, wantKey: model.MessageNoRefund},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := tt.policy.Evaluate(tt.lead)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPct, decision.Percentage)
			assert.Equal(t, tt.wantKey, decision.MessageKey)
		})
	}
}

func TestCancellationPolicy_EvaluateUnknown(t *testing.T) {
	_, err := model.CancellationPolicy("lenient").Evaluate(time.Hour)

	assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
}

func TestDecideRefund(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	booking := model.Booking{
		CancellationPolicy: model.PolicyStrict,
		StartAt:            now.Add(2 * time.Hour),
	}

	renter, err := model.DecideRefund(booking, model.PartyRenter, now)
	require.NoError(t, err)
	assert.Equal(t, 0, renter.Percentage)

	hubber, err := model.DecideRefund(booking, model.PartyHubber, now)
	require.NoError(t, err)
	assert.Equal(t, 100, hubber.Percentage)
	assert.Equal(t, model.MessageHubberCancelled, hubber.MessageKey)

	admin, err := model.DecideRefund(booking, model.PartyAdmin, now)
	require.NoError(t, err)
	assert.Equal(t, 100, admin.Percentage)
}

func TestCalculateRefund_Properties(t *testing.T) {
	payments := []model.Payment{
		{Total: 10000, Wallet: 3000, Card: 7000},
		{Total: 10000, Wallet: 0, Card: 10000},
		{Total: 10000, Wallet: 10000, Card: 0},
		{Total: 999, Wallet: 333, Card: 666},
		{Total: 1, Wallet: 1, Card: 0},
		{Total: 0, Wallet: 0, Card: 0},
	}

	for _, payment := range payments {
		for pct := 0; pct <= 100; pct++ {
			refund, err := model.CalculateRefund(payment, pct)
			require.NoError(t, err)

			assert.Equal(t, payment.Total.PercentInt(pct), refund.Total)
			assert.Equal(t, refund.Total, refund.Wallet+refund.Card)
			assert.LessOrEqual(t, refund.Wallet, payment.Wallet)
			assert.LessOrEqual(t, refund.Card, payment.Card)
			assert.GreaterOrEqual(t, refund.Wallet, money.Cents(0))
			assert.GreaterOrEqual(t, refund.Card, money.Cents(0))
		}
	}
}

func TestCalculateRefund(t *testing.T) {
	payment := model.Payment{Total: 10000, Wallet: 3000, Card: 7000}

	tests := []struct {
		name       string
		payment    model.Payment
		pct        int
		wantWallet money.Cents
		wantCard   money.Cents
		wantErr    bool
	}{
		{name: "full refund", payment: payment, pct: 100, wantWallet: 3000, wantCard: 7000},
		{name: "half refund drains wallet first", payment: payment, pct: 50, wantWallet: 3000, wantCard: 2000},
		{name: "small refund stays in wallet", payment: payment, pct: 20, wantWallet: 2000, wantCard: 0},
		{name: "no refund", payment: payment, pct: 0, wantWallet: 0, wantCard: 0},
		{name: "odd total rounds half away from zero", payment: model.Payment{Total: 999, Card: 999}, pct: 50, wantCard: 500},
		{name: "negative percentage", payment: payment, pct: -1, wantErr: true},
		{name: "percentage above 100", payment: payment, pct: 101, wantErr: true},
		{name: "split does not add up", payment: model.Payment{Total: 10000, Wallet: 3000, Card: 6000}, pct: 100, wantErr: true},
		{name: "negative amount", payment: model.Payment{Total: 0, Wallet: -10, Card: 10}, pct: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refund, err := model.CalculateRefund(tt.payment, tt.pct)

			if tt.wantErr {
				assert.True(t, failure.HasReason(err, failure.ReasonInvalidAmount))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantWallet, refund.Wallet)
			assert.Equal(t, tt.wantCard, refund.Card)
		})
	}
}

func TestHubberCompensation(t *testing.T) {
	assert.Equal(t, money.Cents(7000), model.HubberCompensation(7000, 0))
	assert.Equal(t, money.Cents(7000), model.HubberCompensation(7000, 50))
	assert.Equal(t, money.Cents(7000), model.HubberCompensation(7000, 99))
	assert.Equal(t, money.Cents(0), model.HubberCompensation(7000, 100))
}

func TestBooking_Payable(t *testing.T) {
	half := 50
	full := 100

	tests := []struct {
		name    string
		booking model.Booking
		want    money.Cents
	}{
		{
			name:    "completed booking pays the net",
			booking: model.Booking{Status: model.StatusCompleted, HubberNetCents: 7000},
			want:    7000,
		},
		{
			name:    "partial refund keeps the whole net for the hubber",
			booking: model.Booking{Status: model.StatusCancelled, HubberNetCents: 7000, RefundPercentage: &half},
			want:    7000,
		},
		{
			name:    "full refund pays nothing",
			booking: model.Booking{Status: model.StatusCancelled, HubberNetCents: 7000, RefundPercentage: &full},
		},
		{
			name:    "cancelled without a recorded refund pays nothing",
			booking: model.Booking{Status: model.StatusCancelled, HubberNetCents: 7000},
		},
		{
			name:    "confirmed booking pays nothing yet",
			booking: model.Booking{Status: model.StatusConfirmed, HubberNetCents: 7000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.Payable())
		})
	}
}

func TestIdempotencyKeys_ChangeWithAttempt(t *testing.T) {
	assert.Equal(t, "booking-transfer-b-1-0", model.TransferIdempotencyKey("b-1", 0))
	assert.Equal(t, "booking-transfer-b-1-1", model.TransferIdempotencyKey("b-1", 1))
	assert.Equal(t, "booking-refund-b-1-0", model.RefundIdempotencyKey("b-1", 0))
	assert.NotEqual(t, model.RefundIdempotencyKey("b-1", 0), model.RefundIdempotencyKey("b-1", 1))
}

func TestBooking_PreviousStatus(t *testing.T) {
	accepted := string(model.StatusAccepted)

	assert.Equal(t, model.StatusAccepted, model.Booking{StatusBeforeCancel: &accepted}.PreviousStatus())
	assert.Equal(t, model.StatusConfirmed, model.Booking{}.PreviousStatus())
}

func TestStatus_CanTransition(t *testing.T) {
	assert.True(t, model.StatusPending.CanTransition(model.StatusAccepted))
	assert.True(t, model.StatusActive.CanTransition(model.StatusCompleted))
	assert.False(t, model.StatusCompleted.CanTransition(model.StatusCancelled))
	assert.False(t, model.StatusActive.Cancellable())
	assert.True(t, model.StatusConfirmed.Cancellable())
}
