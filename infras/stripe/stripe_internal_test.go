package stripe

import (
	"context"
	"errors"
	"net/http"
	"renthubber/shared/failure"
	"testing"

	stripeGo "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		unknown bool
	}{
		{
			name:    "card error is definite",
			err:     &stripeGo.Error{HTTPStatusCode: http.StatusPaymentRequired, Code: stripeGo.ErrorCode("balance_insufficient"), Msg: "insufficient funds"},
			unknown: false,
		},
		{
			name:    "server error may have applied",
			err:     &stripeGo.Error{HTTPStatusCode: http.StatusBadGateway, Msg: "upstream"},
			unknown: true,
		},
		{
			name:    "timeout may have applied",
			err:     context.DeadlineExceeded,
			unknown: true,
		},
		{
			name:    "network error may have applied",
			err:     errors.New("connection reset by peer"),
			unknown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err, "create transfer")

			assert.True(t, failure.HasReason(err, failure.ReasonExternalProcessor))
			assert.Equal(t, tt.unknown, failure.OutcomeUnknown(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAccountReady(t *testing.T) {
	assert.True(t, Account{ChargesEnabled: true, PayoutsEnabled: true}.Ready())
	assert.False(t, Account{ChargesEnabled: true}.Ready())
	assert.False(t, Account{PayoutsEnabled: true}.Ready())
}
