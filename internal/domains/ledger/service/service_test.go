package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"renthubber/infras/otel/mocks"
	ledgerMocks "renthubber/internal/domains/ledger/mocks"
	"renthubber/internal/domains/ledger/model"
	"renthubber/internal/domains/ledger/service"
	userMocks "renthubber/internal/domains/user/mocks"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
)

func TestLedgerService_Post(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ledgerMocks.NewMockTransaction(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)

	svc := service.New(mockRepo, mockUserRepo, mocks.NewOtel())

	credit := model.Posting{
		UserID:    "hubber-1",
		Account:   model.AccountBalance,
		Direction: model.DirectionCredit,
		Amount:    7000,
		Type:      model.TypeBookingPayout,
		BookingID: "booking-1",
	}

	debit := model.Posting{
		UserID:    "hubber-1",
		Account:   model.AccountBalance,
		Direction: model.DirectionDebit,
		Amount:    500,
		Type:      model.TypePayout,
		PayoutID:  "payout-1",
	}

	tests := []struct {
		name       string
		posting    model.Posting
		setupMock  func()
		wantErr    bool
		wantReason failure.Reason
	}{
		{
			name:    "credit increments balance and appends entry",
			posting: credit,
			setupMock: func() {
				mockUserRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), "balance_cents", int64(7000), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, _ string, _ int64, filter gDto.FilterGroup) (int64, error) {
						assert.Len(t, filter.Filters, 1)

						return 1, nil
					})

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, tx model.Transaction) error {
						assert.NotEmpty(t, tx.ID)
						assert.Equal(t, "booking-1", *tx.BookingID)
						assert.Nil(t, tx.PayoutID)
						assert.Equal(t, model.DirectionCredit, tx.Direction)

						return nil
					})
			},
		},
		{
			name:    "debit is guarded by current balance",
			posting: debit,
			setupMock: func() {
				mockUserRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), "balance_cents", int64(-500), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, _ string, _ int64, filter gDto.FilterGroup) (int64, error) {
						assert.Len(t, filter.Filters, 2)

						guard, ok := filter.Filters[1].(gDto.Filter)
						assert.True(t, ok)
						assert.Equal(t, gDto.FilterOperatorGreaterEq, guard.Operator)
						assert.Equal(t, int64(500), guard.Value)

						return 1, nil
					})

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:    "debit larger than balance",
			posting: debit,
			setupMock: func() {
				mockUserRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonInsufficientBalance,
		},
		{
			name:    "credit for missing user",
			posting: credit,
			setupMock: func() {
				mockUserRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr: true,
		},
		{
			name: "wallet credit uses wallet column",
			posting: model.Posting{
				UserID:    "renter-1",
				Account:   model.AccountWallet,
				Direction: model.DirectionCredit,
				Amount:    3000,
				Type:      model.TypeRefund,
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), "wallet_balance_cents", int64(3000), gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:       "zero amount",
			posting:    model.Posting{UserID: "hubber-1", Direction: model.DirectionCredit},
			setupMock:  func() {},
			wantErr:    true,
			wantReason: failure.ReasonInvalidAmount,
		},
		{
			name:    "entry insert error",
			posting: credit,
			setupMock: func() {
				mockUserRepo.EXPECT().
					IncrementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Post(context.Background(), nil, tt.posting)

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

func TestLedgerService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ledgerMocks.NewMockTransaction(ctrl)
	svc := service.New(mockRepo, userMocks.NewMockUser(ctrl), mocks.NewOtel())

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(11, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Transaction, error) {
			assert.Equal(t, model.FieldCreatedAt, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Transaction{{ID: "tx-1", AmountCents: 100, Type: model.TypeRefund}}, nil
		})

	res, err := svc.List(context.Background(), "user-1", gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Transactions, 1)
	assert.Equal(t, "refund", res.Transactions[0].Type)
}
