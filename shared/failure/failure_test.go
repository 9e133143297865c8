package failure_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"renthubber/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		reason failure.Reason
	}{
		{name: "bad request", err: failure.BadRequestFromString("bad"), code: http.StatusBadRequest},
		{name: "unauthorized", err: failure.Unauthorized("who"), code: http.StatusUnauthorized},
		{name: "not found", err: failure.NotFound("booking"), code: http.StatusNotFound},
		{name: "forbidden", err: failure.Forbidden("no"), code: http.StatusForbidden},
		{name: "conflict", err: failure.Conflict("dup"), code: http.StatusConflict},
		{name: "invalid state", err: failure.InvalidState("booking is active"), code: http.StatusConflict, reason: failure.ReasonInvalidState},
		{name: "already settled", err: failure.AlreadySettled("done"), code: http.StatusConflict, reason: failure.ReasonAlreadySettled},
		{name: "account not ready", err: failure.AccountNotReady("payouts disabled"), code: http.StatusUnprocessableEntity, reason: failure.ReasonAccountNotReady},
		{name: "insufficient balance", err: failure.InsufficientBalance("300 < 500"), code: http.StatusUnprocessableEntity, reason: failure.ReasonInsufficientBalance},
		{name: "invalid amount", err: failure.InvalidAmount("negative"), code: http.StatusBadRequest, reason: failure.ReasonInvalidAmount},
		{name: "open dispute", err: failure.OpenDisputeBlock("1 open"), code: http.StatusConflict, reason: failure.ReasonOpenDisputeBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))

			var fail *failure.Failure
			assert.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.reason, fail.Reason)
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.ExternalProcessor(nil, true))
}

func TestIsMatchesReason(t *testing.T) {
	err := fmt.Errorf("approve payout: %w", failure.InsufficientBalance("balance 300 below 500"))

	assert.ErrorIs(t, err, failure.InsufficientBalance(""))
	assert.NotErrorIs(t, err, failure.OpenDisputeBlock(""))
	assert.True(t, failure.HasReason(err, failure.ReasonInsufficientBalance))
	assert.False(t, failure.HasReason(errors.New("plain"), failure.ReasonInsufficientBalance))

	// failures without a reason never match each other
	assert.NotErrorIs(t, failure.Conflict("a"), failure.Conflict("a"))
}

func TestExternalProcessor(t *testing.T) {
	cause := context.DeadlineExceeded

	err := failure.ExternalProcessor(cause, true)

	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	assert.Equal(t, "payment processor: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, failure.OutcomeUnknown(err))
	assert.True(t, failure.HasReason(err, failure.ReasonExternalProcessor))

	definite := failure.ExternalProcessor(errors.New("card declined"), false)
	assert.False(t, failure.OutcomeUnknown(definite))
	assert.False(t, failure.OutcomeUnknown(errors.New("plain")))
}

func TestGetCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(failure.InternalError(errors.New("boom"))))
}
