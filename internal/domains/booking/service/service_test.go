package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"renthubber/config"
	"renthubber/infras/kafka"
	kafkaMocks "renthubber/infras/kafka/mocks"
	"renthubber/infras/otel/mocks"
	postgresMocks "renthubber/infras/postgres/mocks"
	bookingMocks "renthubber/internal/domains/booking/mocks"
	"renthubber/internal/domains/booking/model"
	"renthubber/internal/domains/booking/model/dto"
	"renthubber/internal/domains/booking/service"
	feeModel "renthubber/internal/domains/fee/model"
	feeMocks "renthubber/internal/domains/fee/service/mocks"
	ledgerModel "renthubber/internal/domains/ledger/model"
	ledgerMocks "renthubber/internal/domains/ledger/service/mocks"
	cacheMocks "renthubber/shared/cache/mocks"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/money"
)

type fixture struct {
	repo       *bookingMocks.MockBooking
	fee        *feeMocks.MockFee
	ledger     *ledgerMocks.MockLedger
	transactor *postgresMocks.MockTransactor
	kafka      *kafkaMocks.MockClient
	cache      *cacheMocks.MockRedisCache
	svc        service.Booking
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.BookingCompleted = "booking.completed"

	f := &fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		fee:        feeMocks.NewMockFee(ctrl),
		ledger:     ledgerMocks.NewMockLedger(ctrl),
		transactor: postgresMocks.NewMockTransactor(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, f.fee, f.ledger, f.transactor, f.kafka, cfg, f.cache, mocks.NewOtel())

	return f
}

func runTx(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
	return fn(ctx, nil)
}

func asUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func createRequest(wallet int64) dto.CreateBookingRequest {
	start := time.Now().Add(72 * time.Hour).UTC()

	return dto.CreateBookingRequest{
		ListingID:          "listing-1",
		HubberID:           "hubber-1",
		CancellationPolicy: "flexible",
		StartAt:            start.Format(time.RFC3339),
		EndAt:              start.Add(48 * time.Hour).Format(time.RFC3339),
		BasePriceCents:     10000,
		CleaningFeeCents:   500,
		WalletPaidCents:    wallet,
		PaymentIntentID:    "pi_123",
	}
}

func quote() feeModel.Quote {
	return feeModel.Quote{
		BasePrice:        10000,
		RenterServiceFee: 1200,
		PlatformFee:      200,
		HubberCommission: 1000,
		HubberNet:        9000,
		Renter:           feeModel.Resolution{OverrideID: "promo"},
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("renter-1", constant.RoleRenter)

	t.Run("wallet part is debited in the same transaction", func(t *testing.T) {
		f.fee.EXPECT().Quote(gomock.Any(), "renter-1", "hubber-1", money.Cents(10000)).Return(quote(), nil)
		f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				assert.EqualValues(t, 11900, b.TotalPriceCents)
				assert.EqualValues(t, 3000, b.WalletPaidCents)
				assert.EqualValues(t, 8900, b.CardPaidCents)
				assert.EqualValues(t, 9500, b.HubberNetCents)
				assert.Equal(t, "promo", b.RenterOverride())
				assert.Nil(t, b.HubberFeeOverrideID)
				assert.Equal(t, model.StatusPending, b.Status)
				assert.Equal(t, model.SettlementNone, b.SettlementState)

				return nil
			})
		f.ledger.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p ledgerModel.Posting) error {
				assert.Equal(t, ledgerModel.AccountWallet, p.Account)
				assert.Equal(t, ledgerModel.DirectionDebit, p.Direction)
				assert.EqualValues(t, 3000, p.Amount)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), "booking:list*").Return(nil)

		res, err := f.svc.Create(ctx, createRequest(3000))

		require.NoError(t, err)
		assert.Equal(t, res.WalletPaidCents+res.CardPaidCents, res.TotalPriceCents)
	})

	t.Run("card only skips ledger", func(t *testing.T) {
		f.fee.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(quote(), nil)
		f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(ctx, createRequest(0))

		require.NoError(t, err)
	})

	t.Run("insufficient wallet rolls back", func(t *testing.T) {
		f.fee.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(quote(), nil)
		f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.ledger.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.InsufficientBalance("wallet too low"))

		_, err := f.svc.Create(ctx, createRequest(3000))

		assert.True(t, failure.HasReason(err, failure.ReasonInsufficientBalance))
	})

	t.Run("wallet above total", func(t *testing.T) {
		f.fee.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(quote(), nil)

		_, err := f.svc.Create(ctx, createRequest(20000))

		assert.True(t, failure.HasReason(err, failure.ReasonInvalidAmount))
	})

	t.Run("card part without payment intent", func(t *testing.T) {
		f.fee.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(quote(), nil)

		req := createRequest(0)
		req.PaymentIntentID = ""

		_, err := f.svc.Create(ctx, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("booking own listing", func(t *testing.T) {
		_, err := f.svc.Create(asUser("hubber-1", constant.RoleHubber), createRequest(0))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("end before start", func(t *testing.T) {
		req := createRequest(0)
		req.EndAt = req.StartAt

		_, err := f.svc.Create(ctx, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)
	booking := model.Booking{ID: "b-1", RenterID: "renter-1", HubberID: "hubber-1", Status: model.StatusPending}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantCode  int
	}{
		{
			name: "renter reads from repository",
			ctx:  asUser("renter-1", constant.RoleRenter),
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.cache.EXPECT().Save(gomock.Any(), "booking:get:b-1", gomock.Any(), 60).Return(nil)
			},
		},
		{
			name: "stranger is refused",
			ctx:  asUser("someone", constant.RoleRenter),
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "not found",
			ctx:  asUser("admin-1", constant.RoleAdmin),
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(tt.ctx, "b-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "b-1", res.ID)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "booking:list:renter-1:pending:page=1&limit=10&sort_by=&sort_dir=", gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()

			assert.Contains(t, where, "bookings.renter_id = :renter_id OR bookings.hubber_id = :hubber_id")
			assert.Equal(t, "pending", args["status"])

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "b-1"}}, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.GetAll(asUser("renter-1", constant.RoleRenter), gDto.QueryParams{Page: 1, Limit: 10}, "pending")

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_Transitions(t *testing.T) {
	hubber := asUser("hubber-1", constant.RoleHubber)

	booking := func(status model.Status) model.Booking {
		return model.Booking{ID: "b-1", RenterID: "renter-1", HubberID: "hubber-1", Status: status, HubberNetCents: 7000}
	}

	t.Run("hubber accepts pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
		f.repo.EXPECT().
			ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusAccepted, req[model.FieldStatus])

				_, args := filter.GetWhereClause()
				assert.Equal(t, model.StatusPending, args[model.FieldStatus])

				return 1, nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), "booking:get:b-1*").Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), "booking:list*").Return(nil)

		res, err := f.svc.Accept(hubber, "b-1")

		require.NoError(t, err)
		assert.Equal(t, "accepted", res.Status)
	})

	t.Run("renter cannot accept", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)

		_, err := f.svc.Accept(asUser("renter-1", constant.RoleRenter), "b-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("cannot complete a pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)

		_, err := f.svc.Complete(hubber, "b-1")

		assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
	})

	t.Run("lost race", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusAccepted), nil)
		f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Start(hubber, "b-1")

		assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
	})

	t.Run("complete publishes event", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusActive), nil)
		f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "booking.completed", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)

				return errors.New("broker down")
			})

		res, err := f.svc.Complete(hubber, "b-1")

		require.NoError(t, err)
		assert.Equal(t, "completed", res.Status)
	})
}
