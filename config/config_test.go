package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthubber/config"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Fee.DefaultRenterPercent = "7.5"
	cfg.Fee.DefaultHubberPercent = "10"
	cfg.Settlement.StaleAfterSeconds = 900

	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *config.Config) {}},
		{name: "unset fee means no commission", mutate: func(cfg *config.Config) { cfg.Fee.DefaultRenterPercent = "" }},
		{
			name:    "fee above 100",
			mutate:  func(cfg *config.Config) { cfg.Fee.DefaultHubberPercent = "120" },
			wantErr: "FEE_DEFAULT_HUBBER_PERCENT",
		},
		{
			name:    "fee not a number",
			mutate:  func(cfg *config.Config) { cfg.Fee.DefaultRenterPercent = "seven" },
			wantErr: "FEE_DEFAULT_RENTER_PERCENT",
		},
		{
			name:    "stale threshold beyond the idempotency window",
			mutate:  func(cfg *config.Config) { cfg.Settlement.StaleAfterSeconds = 24 * 60 * 60 },
			wantErr: "SETTLEMENT_STALE_AFTER_SECONDS",
		},
		{
			name:    "negative fixed fee",
			mutate:  func(cfg *config.Config) { cfg.Fee.PlatformFixedCents = -1 },
			wantErr: "FEE_PLATFORM_FIXED_CENTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
