package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthubber/shared/failure"
	"renthubber/shared/validator"
)

type payoutRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Role        string `json:"role"         validate:"omitempty,oneof=renter hubber"`
	RenterFee   string `json:"renter_fee"   validate:"omitempty,percentage"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid body", body: `{"amount_cents":500,"role":"hubber","renter_fee":"7.5"}`},
		{name: "missing amount", body: `{"role":"hubber"}`, wantErr: "amount_cents is required"},
		{name: "bad role", body: `{"amount_cents":1,"role":"admin"}`, wantErr: "role must be one of renter hubber"},
		{name: "fee above 100", body: `{"amount_cents":1,"renter_fee":"100.01"}`, wantErr: "renter_fee must be a percentage between 0 and 100"},
		{name: "fee not numeric", body: `{"amount_cents":1,"renter_fee":"ten"}`, wantErr: "renter_fee must be a percentage between 0 and 100"},
		{name: "every failing field is reported", body: `{"role":"admin"}`, wantErr: "amount_cents is required; role must be one of renter hubber"},
		{name: "unknown field", body: `{"amount_cents":1,"currency":"eur"}`, wantErr: "failed to decode request body"},
		{name: "malformed json", body: `{`, wantErr: "failed to decode request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req payoutRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("3f2504e0-4f89-11d3-9a0c-0305e82c3301", "uuid"))
	assert.Error(t, validator.ValidateVar("not-a-uuid", "uuid"))
	assert.NoError(t, validator.ValidateVar("0", "percentage"))
	assert.Error(t, validator.ValidateVar("-1", "percentage"))
}
