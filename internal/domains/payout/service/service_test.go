package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"renthubber/config"
	"renthubber/infras/kafka"
	kafkaMocks "renthubber/infras/kafka/mocks"
	"renthubber/infras/otel/mocks"
	postgresMocks "renthubber/infras/postgres/mocks"
	"renthubber/infras/stripe"
	stripeMocks "renthubber/infras/stripe/mocks"
	accountMocks "renthubber/internal/domains/account/service/mocks"
	disputeMocks "renthubber/internal/domains/dispute/service/mocks"
	ledgerModel "renthubber/internal/domains/ledger/model"
	ledgerMocks "renthubber/internal/domains/ledger/service/mocks"
	payoutMocks "renthubber/internal/domains/payout/mocks"
	"renthubber/internal/domains/payout/model"
	"renthubber/internal/domains/payout/model/dto"
	"renthubber/internal/domains/payout/service"
	userModel "renthubber/internal/domains/user/model"
	userMocks "renthubber/internal/domains/user/service/mocks"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/money"
)

type fixture struct {
	repo       *payoutMocks.MockPayout
	users      *userMocks.MockUser
	account    *accountMocks.MockAccount
	disputes   *disputeMocks.MockDispute
	ledger     *ledgerMocks.MockLedger
	processor  *stripeMocks.MockProcessor
	transactor *postgresMocks.MockTransactor
	kafka      *kafkaMocks.MockClient
	svc        service.Payout
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Settlement.FinalizeMaxRetries = 2
	cfg.Settlement.FinalizeBackoffMillis = 1
	cfg.Kafka.Topics.PayoutProcessed = "payout.processed"

	f := &fixture{
		repo:       payoutMocks.NewMockPayout(ctrl),
		users:      userMocks.NewMockUser(ctrl),
		account:    accountMocks.NewMockAccount(ctrl),
		disputes:   disputeMocks.NewMockDispute(ctrl),
		ledger:     ledgerMocks.NewMockLedger(ctrl),
		processor:  stripeMocks.NewMockProcessor(ctrl),
		transactor: postgresMocks.NewMockTransactor(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, f.users, f.account, f.disputes, f.ledger, f.processor, f.transactor, f.kafka, cfg, mocks.NewOtel())

	return f
}

func runTx(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
	return fn(ctx, nil)
}

func asUser(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func hubber(balance money.Cents) userModel.User {
	account := "acct_1"

	return userModel.User{
		ID:              "hubber-1",
		StripeAccountID: &account,
		ChargesEnabled:  true,
		PayoutsEnabled:  true,
		BalanceCents:    balance,
	}
}

func pending(amount money.Cents) model.Request {
	return model.Request{ID: "payout-1", UserID: "hubber-1", AmountCents: amount, Status: model.StatusPending}
}

func TestPayoutService_Create(t *testing.T) {
	ctx := asUser("hubber-1", constant.RoleHubber)

	tests := []struct {
		name      string
		amount    int64
		setupMock func(f *fixture)
		reason    failure.Reason
		wantErr   bool
	}{
		{
			name:   "within balance",
			amount: 300,
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), "hubber-1").Return(hubber(300), nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r model.Request) error {
						assert.Equal(t, model.StatusPending, r.Status)
						assert.EqualValues(t, 300, r.AmountCents)

						return nil
					})
			},
		},
		{
			name:   "above balance",
			amount: 500,
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), "hubber-1").Return(hubber(300), nil)
			},
			reason:  failure.ReasonInsufficientBalance,
			wantErr: true,
		},
		{
			name:      "zero amount",
			amount:    0,
			setupMock: func(_ *fixture) {},
			reason:    failure.ReasonInvalidAmount,
			wantErr:   true,
		},
		{
			name:   "insert fails",
			amount: 100,
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), "hubber-1").Return(hubber(300), nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(ctx, dto.CreatePayoutRequest{AmountCents: tt.amount})

			if tt.wantErr {
				require.Error(t, err)

				if tt.reason != "" {
					assert.True(t, failure.HasReason(err, tt.reason))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(model.StatusPending), res.Status)
		})
	}
}

func TestPayoutService_Approve(t *testing.T) {
	admin := asUser("admin-1", constant.RoleAdmin)

	claimOK := func(f *fixture) {
		f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.repo.EXPECT().ConditionalUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
	}

	t.Run("pays out and debits the balance", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		claimOK(f)
		f.account.EXPECT().EnsureReady(gomock.Any(), "hubber-1").Return(hubber(300), nil)
		f.disputes.EXPECT().CountOpenAgainst(gomock.Any(), "hubber-1").Return(0, nil)
		f.processor.EXPECT().
			Payout(gomock.Any(), stripe.PayoutRequest{IdempotencyKey: "payout-payout-1-0", Account: "acct_1", Amount: 300, EntityID: "payout-1"}).
			Return("po_1", nil)
		f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.repo.EXPECT().
			ConditionalUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusApproved, req[model.FieldStatus])
				assert.Equal(t, "po_1", req[model.FieldStripePayoutID])
				assert.Equal(t, "admin-1", req[model.FieldProcessedBy])

				return 1, nil
			})
		f.ledger.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p ledgerModel.Posting) error {
				assert.Equal(t, ledgerModel.DirectionDebit, p.Direction)
				assert.Equal(t, ledgerModel.TypePayout, p.Type)
				assert.Equal(t, "payout-1", p.PayoutID)
				assert.EqualValues(t, 300, p.Amount)

				return nil
			})
		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "payout.processed", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
				event, ok := msgs[0].Value.(model.Event)
				require.True(t, ok)
				assert.Equal(t, model.EventApproved, event.Type)

				return nil
			})

		res, err := f.svc.Approve(admin, "payout-1")

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusApproved), res.Status)
		require.NotNil(t, res.StripePayoutID)
		assert.Equal(t, "po_1", *res.StripePayoutID)
	})

	t.Run("balance below amount never reaches the processor", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(500), nil)
		claimOK(f)
		f.account.EXPECT().EnsureReady(gomock.Any(), "hubber-1").Return(hubber(300), nil)
		f.disputes.EXPECT().CountOpenAgainst(gomock.Any(), "hubber-1").Return(0, nil)
		f.repo.EXPECT().
			ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusPending, req[model.FieldStatus])
				assert.Equal(t, 1, req[model.FieldAttempts])
				assert.NotEmpty(t, req[model.FieldLastError])

				return 1, nil
			})

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonInsufficientBalance))
	})

	t.Run("open dispute blocks the payout", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		claimOK(f)
		f.account.EXPECT().EnsureReady(gomock.Any(), "hubber-1").Return(hubber(300), nil)
		f.disputes.EXPECT().CountOpenAgainst(gomock.Any(), "hubber-1").Return(1, nil)
		f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonOpenDisputeBlock))
	})

	t.Run("account not ready", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		claimOK(f)
		f.account.EXPECT().EnsureReady(gomock.Any(), "hubber-1").Return(userModel.User{}, failure.AccountNotReady("payouts disabled"))
		f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonAccountNotReady))
	})

	t.Run("already approved", func(t *testing.T) {
		f := newFixture(t)

		request := pending(300)
		request.Status = model.StatusApproved
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(request, nil)

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
	})

	t.Run("lost claim", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.repo.EXPECT().ConditionalUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
	})

	t.Run("concurrent claim hits the in-flight index", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.repo.EXPECT().
			ConditionalUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), &pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
	})

	t.Run("processor rejection returns the request to pending", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		claimOK(f)
		f.account.EXPECT().EnsureReady(gomock.Any(), "hubber-1").Return(hubber(300), nil)
		f.disputes.EXPECT().CountOpenAgainst(gomock.Any(), "hubber-1").Return(0, nil)
		f.processor.EXPECT().Payout(gomock.Any(), gomock.Any()).Return("", failure.ExternalProcessor(errors.New("card declined"), false))
		f.repo.EXPECT().
			ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusPending, req[model.FieldStatus])
				assert.Equal(t, 1, req[model.FieldAttempts])

				return 1, nil
			})

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonExternalProcessor))
	})

	t.Run("approval after a rejection uses a fresh idempotency key", func(t *testing.T) {
		f := newFixture(t)

		retried := pending(300)
		retried.Attempts = 1
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(retried, nil)
		claimOK(f)
		f.account.EXPECT().EnsureReady(gomock.Any(), "hubber-1").Return(hubber(300), nil)
		f.disputes.EXPECT().CountOpenAgainst(gomock.Any(), "hubber-1").Return(0, nil)
		f.processor.EXPECT().
			Payout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req stripe.PayoutRequest) (string, error) {
				assert.Equal(t, "payout-payout-1-1", req.IdempotencyKey)

				return "", failure.ExternalProcessor(errors.New("timeout"), true)
			})

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.OutcomeUnknown(err))
	})

	t.Run("unknown processor outcome stays processing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		claimOK(f)
		f.account.EXPECT().EnsureReady(gomock.Any(), "hubber-1").Return(hubber(300), nil)
		f.disputes.EXPECT().CountOpenAgainst(gomock.Any(), "hubber-1").Return(0, nil)
		f.processor.EXPECT().Payout(gomock.Any(), gomock.Any()).Return("", failure.ExternalProcessor(errors.New("timeout"), true))

		_, err := f.svc.Approve(admin, "payout-1")

		require.Error(t, err)
		assert.True(t, failure.OutcomeUnknown(err))
	})
}

func TestPayoutService_Reject(t *testing.T) {
	admin := asUser("admin-1", constant.RoleAdmin)

	t.Run("pending request", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), "payout.processed", gomock.Any()).Return(nil)

		res, err := f.svc.Reject(admin, "payout-1", dto.RejectPayoutRequest{Reason: "suspicious"})

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusRejected), res.Status)
		require.NotNil(t, res.RejectionReason)
		assert.Equal(t, "suspicious", *res.RejectionReason)
	})

	t.Run("no longer pending", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)
		f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Reject(admin, "payout-1", dto.RejectPayoutRequest{Reason: "late"})

		require.Error(t, err)
		assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Request{}, nil)

		_, err := f.svc.Reject(admin, "payout-1", dto.RejectPayoutRequest{Reason: "late"})

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPayoutService_Get(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)

		res, err := f.svc.Get(asUser("hubber-1", constant.RoleHubber), "payout-1")

		require.NoError(t, err)
		assert.Equal(t, "payout-1", res.ID)
	})

	t.Run("someone else", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending(300), nil)

		_, err := f.svc.Get(asUser("hubber-2", constant.RoleHubber), "payout-1")

		assert.ErrorIs(t, err, failure.ResourceRestrictedError)
	})
}

func TestPayoutService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "payout_requests.user_id")
			assert.Equal(t, "hubber-1", args[model.FieldUserID])

			return 1, nil
		})
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Request, error) {
			assert.Equal(t, model.FieldRequestedAt, params.SortBy)

			return []model.Request{pending(300)}, nil
		})

	res, err := f.svc.GetAll(asUser("hubber-1", constant.RoleHubber), gDto.QueryParams{Page: 1, Limit: 10}, "")

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Payouts, 1)
}

func TestPayoutService_Reconcile(t *testing.T) {
	ctx := asUser(constant.ContextSystem, constant.RoleAdmin)

	f := newFixture(t)

	paid := pending(300)
	paid.ID = "payout-paid"
	paid.Status = model.StatusProcessing

	unknown := pending(200)
	unknown.ID = "payout-unknown"
	unknown.Status = model.StatusProcessing

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Request{paid, unknown}, nil)
	f.users.EXPECT().Get(gomock.Any(), "hubber-1").Return(hubber(500), nil).Times(2)
	f.processor.EXPECT().
		Payout(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req stripe.PayoutRequest) (string, error) {
			if req.EntityID == "payout-paid" {
				assert.Equal(t, "payout-payout-paid-0", req.IdempotencyKey)

				return "po_paid", nil
			}

			return "", failure.ExternalProcessor(errors.New("timeout"), true)
		}).Times(2)
	f.transactor.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
	f.repo.EXPECT().ConditionalUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.ledger.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Reconcile(ctx, time.Now().Add(-time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 1, res.Resolved)
	require.Len(t, res.Unresolved, 1)
	assert.Equal(t, "payout-unknown", res.Unresolved[0].ID)
}
