package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"renthubber/infras/otel/mocks"
	bookingMocks "renthubber/internal/domains/booking/mocks"
	bookingModel "renthubber/internal/domains/booking/model"
	disputeMocks "renthubber/internal/domains/dispute/mocks"
	"renthubber/internal/domains/dispute/model"
	"renthubber/internal/domains/dispute/model/dto"
	"renthubber/internal/domains/dispute/service"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
)

func TestDisputeService_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mocks.NewOtel())

	booking := bookingModel.Booking{ID: "b-1", RenterID: "renter-1", HubberID: "hubber-1"}

	tests := []struct {
		name        string
		userID      string
		setupMock   func()
		wantCode    int
		wantAgainst string
	}{
		{
			name:   "renter opens against hubber",
			userID: "renter-1",
			setupMock: func() {
				mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAgainst: "hubber-1",
		},
		{
			name:   "hubber opens against renter",
			userID: "hubber-1",
			setupMock: func() {
				mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAgainst: "renter-1",
		},
		{
			name:   "outsider",
			userID: "someone",
			setupMock: func() {
				mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "already open",
			userID: "renter-1",
			setupMock: func() {
				mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "booking missing",
			userID: "renter-1",
			setupMock: func() {
				mockBookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			res, err := svc.Open(ctx, dto.OpenDisputeRequest{BookingID: "b-1", Reason: "damaged item"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantAgainst, res.AgainstUserID)
				assert.Equal(t, "open", res.Status)
			}
		})
	}
}

func TestDisputeService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	svc := service.New(mockRepo, bookingMocks.NewMockBooking(ctrl), mocks.NewOtel())

	open := model.Dispute{ID: "d-1", Status: model.StatusOpen}

	t.Run("open dispute is resolved", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil)
		mockRepo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := svc.Resolve(context.Background(), "d-1", dto.ResolveDisputeRequest{Resolution: "refunded"})

		require.NoError(t, err)
		assert.Equal(t, "resolved", res.Status)
		assert.Equal(t, "refunded", *res.Resolution)
		assert.NotNil(t, res.ResolvedAt)
	})

	t.Run("already resolved", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil)
		mockRepo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := svc.Resolve(context.Background(), "d-1", dto.ResolveDisputeRequest{Resolution: "again"})

		assert.True(t, failure.HasReason(err, failure.ReasonInvalidState))
	})
}

func TestDisputeService_CountOpenAgainst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	svc := service.New(mockRepo, bookingMocks.NewMockBooking(ctrl), mocks.NewOtel())

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()

			assert.Equal(t, "hubber-1", args[model.FieldAgainstUserID])
			assert.Equal(t, model.StatusOpen, args[model.FieldStatus])

			return 2, nil
		})

	count, err := svc.CountOpenAgainst(context.Background(), "hubber-1")

	require.NoError(t, err)
	assert.Equal(t, 2, count)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))

	_, err = svc.CountOpenAgainst(context.Background(), "hubber-1")
	assert.Error(t, err)
}
