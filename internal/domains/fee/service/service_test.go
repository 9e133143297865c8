package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"renthubber/config"
	"renthubber/infras/otel/mocks"
	feeMocks "renthubber/internal/domains/fee/mocks"
	"renthubber/internal/domains/fee/model"
	"renthubber/internal/domains/fee/model/dto"
	"renthubber/internal/domains/fee/service"
	cacheMocks "renthubber/shared/cache/mocks"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/timezone"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Fee.DefaultRenterPercent = "12"
	cfg.Fee.DefaultHubberPercent = "10"
	cfg.Fee.PlatformFixedCents = 200

	return cfg
}

func activeOverride(id string) model.Override {
	return model.Override{
		ID:         id,
		UserID:     "user-1",
		ValidFrom:  timezone.Now().Add(-time.Hour),
		ValidUntil: timezone.Now().Add(time.Hour),
		Status:     model.StatusActive,
	}
}

func TestFeeService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockOverride(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel())

	waived := activeOverride("promo")
	waived.FeesDisabled = true
	waived.CustomRenterFee = decimal.NewNullDecimal(decimal.RequireFromString("5"))

	tests := []struct {
		name        string
		role        model.Role
		setupMock   func()
		wantErr     bool
		wantPercent string
		wantWaived  bool
	}{
		{
			name: "no override returns platform default",
			role: model.RoleRenter,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "fee:overrides:user-1", gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				mockCache.EXPECT().Save(gomock.Any(), "fee:overrides:user-1", gomock.Any(), 60).Return(nil)
			},
			wantPercent: "12",
		},
		{
			name: "fees disabled override returns zero",
			role: model.RoleRenter,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Override{waived}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantPercent: "0",
			wantWaived:  true,
		},
		{
			name: "cache hit skips repository",
			role: model.RoleHubber,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantPercent: "10",
		},
		{
			name: "repository error",
			role: model.RoleHubber,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name:      "unknown role",
			role:      model.Role("admin"),
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Resolve(context.Background(), "user-1", tt.role)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantPercent, res.Percent.String())
				assert.Equal(t, tt.wantWaived, res.FeesWaived)
			}
		})
	}
}

func TestFeeService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockOverride(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel())

	t.Run("platform defaults", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		quote, err := svc.Quote(context.Background(), "renter-1", "hubber-1", 10000)

		assert.NoError(t, err)
		assert.EqualValues(t, 1200, quote.RenterServiceFee)
		assert.EqualValues(t, 200, quote.PlatformFee)
		assert.EqualValues(t, 1000, quote.HubberCommission)
		assert.EqualValues(t, 9000, quote.HubberNet)
	})

	t.Run("renter fees waived drops platform fee", func(t *testing.T) {
		waived := activeOverride("promo")
		waived.FeesDisabled = true

		mockCache.EXPECT().Get(gomock.Any(), "fee:overrides:renter-1", gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Override{waived}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Get(gomock.Any(), "fee:overrides:hubber-1", gomock.Any()).Return(nil)

		quote, err := svc.Quote(context.Background(), "renter-1", "hubber-1", 10000)

		assert.NoError(t, err)
		assert.EqualValues(t, 0, quote.RenterServiceFee)
		assert.EqualValues(t, 0, quote.PlatformFee)
		assert.Equal(t, "promo", quote.Renter.OverrideID)
		assert.EqualValues(t, 9000, quote.HubberNet)
	})

	t.Run("non positive base price", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), "renter-1", "hubber-1", 0)

		assert.True(t, failure.HasReason(err, failure.ReasonInvalidAmount))
	})
}

func TestFeeService_RecordUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockOverride(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel())

	tests := []struct {
		name       string
		overrideID string
		setupMock  func()
		wantErr    bool
	}{
		{
			name:       "no override is a no-op",
			overrideID: "",
			setupMock:  func() {},
		},
		{
			name:       "increments usage then checks cap",
			overrideID: "promo",
			setupMock: func() {
				mockRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), model.FieldCurrentTransactionAmount, int64(7000), gomock.Any()).
					Return(int64(1), nil)
				mockRepo.EXPECT().
					ConditionalUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusExhausted, req[model.FieldStatus])

						return 1, nil
					})
			},
		},
		{
			name:       "increment error",
			overrideID: "promo",
			setupMock: func() {
				mockRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.RecordUsage(context.Background(), nil, tt.overrideID, 7000)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeeService_ForgetOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockOverride(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel())

	mockCache.EXPECT().Clear(gomock.Any(), "fee:overrides:renter-1").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "fee:overrides:hubber-1").Return(errors.New("redis down"))

	svc.ForgetOverrides(context.Background(), "renter-1", "hubber-1")
}

func TestFeeService_CreateOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockOverride(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel())

	limit := int64(50000)
	valid := dto.CreateOverrideRequest{
		UserID:               "user-1",
		CustomHubberFee:      "5",
		ValidFrom:            "2026-01-01T00:00:00Z",
		ValidUntil:           "2026-12-31T23:59:59Z",
		MaxTransactionAmount: &limit,
		Reason:               "launch promo",
	}

	tests := []struct {
		name      string
		req       dto.CreateOverrideRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  valid,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o model.Override) error {
						assert.Equal(t, model.StatusActive, o.Status)
						assert.Equal(t, "admin-1", o.CreatedBy)
						assert.True(t, o.CustomHubberFee.Valid)
						assert.False(t, o.CustomRenterFee.Valid)
						assert.EqualValues(t, 50000, *o.MaxTransactionAmount)

						return nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), "fee:overrides:user-1*").Return(nil)
			},
		},
		{
			name: "window ends before it starts",
			req: dto.CreateOverrideRequest{
				UserID:     "user-1",
				ValidFrom:  "2026-12-31T00:00:00Z",
				ValidUntil: "2026-01-01T00:00:00Z",
				Reason:     "typo",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "repository error",
			req:  valid,
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			res, err := svc.CreateOverride(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, "5", *res.CustomHubberFee)
			}
		})
	}
}

func TestFeeService_DeactivateOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockOverride(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, newConfig(), mockCache, mocks.NewOtel())

	revoked := activeOverride("promo")
	revoked.Status = model.StatusRevoked

	tests := []struct {
		name       string
		setupMock  func()
		wantErr    bool
		wantReason failure.Reason
	}{
		{
			name: "active override is revoked",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeOverride("promo"), nil)
				mockRepo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				mockCache.EXPECT().Clear(gomock.Any(), "fee:overrides:user-1*").Return(nil)
			},
		},
		{
			name: "already revoked",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(revoked, nil)
				mockRepo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonInvalidState,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Override{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.DeactivateOverride(context.Background(), "promo")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReason != "" {
					assert.True(t, failure.HasReason(err, tt.wantReason))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
