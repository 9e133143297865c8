package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"renthubber/infras/otel/mocks"
	"renthubber/internal/domains/booking/model/dto"
	bookingMocks "renthubber/internal/domains/booking/service/mocks"
	settlementMocks "renthubber/internal/domains/settlement/service/mocks"
	"renthubber/internal/handlers/booking"
	"renthubber/shared/failure"
)

type fixture struct {
	bookings   *bookingMocks.MockBooking
	settlement *settlementMocks.MockSettlement
	router     http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		bookings:   bookingMocks.NewMockBooking(ctrl),
		settlement: settlementMocks.NewMockSettlement(ctrl),
	}

	handler := booking.New(f.bookings, f.settlement, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)
	f.router = router

	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)

	return recorder
}

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
				assert.Equal(t, "hubber-1", req.HubberID)
				assert.Equal(t, int64(10000), req.BasePriceCents)

				return dto.BookingResponse{ID: "booking-1", Status: "pending"}, nil
			})

		recorder := f.do(http.MethodPost, "/bookings", `{
			"listing_id": "listing-1",
			"hubber_id": "hubber-1",
			"cancellation_policy": "flexible",
			"start_at": "2026-11-01T10:00:00Z",
			"end_at": "2026-11-03T10:00:00Z",
			"base_price_cents": 10000
		}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"id":"booking-1"`)
	})

	t.Run("unknown policy is rejected before the service", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodPost, "/bookings", `{
			"listing_id": "listing-1",
			"hubber_id": "hubber-1",
			"cancellation_policy": "lenient",
			"start_at": "2026-11-01T10:00:00Z",
			"end_at": "2026-11-03T10:00:00Z",
			"base_price_cents": 10000
		}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, decodeError(t, recorder).Error, "cancellation_policy")
	})
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), "completed").Return(dto.GetBookingsResponse{}, nil)

		recorder := f.do(http.MethodGet, "/bookings?status=completed", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodGet, "/bookings?status=archived", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_CancelBooking(t *testing.T) {
	t.Run("with a reason", func(t *testing.T) {
		f := newFixture(t)

		f.settlement.EXPECT().Cancel(gomock.Any(), "booking-1", dto.CancelBookingRequest{Reason: "plans changed"}).
			Return(dto.BookingResponse{ID: "booking-1", Status: "cancelled"}, nil)

		recorder := f.do(http.MethodPost, "/bookings/booking-1/cancel", `{"reason":"plans changed"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"cancelled"`)
	})

	t.Run("without a body", func(t *testing.T) {
		f := newFixture(t)

		f.settlement.EXPECT().Cancel(gomock.Any(), "booking-1", dto.CancelBookingRequest{}).
			Return(dto.BookingResponse{ID: "booking-1", Status: "cancelled"}, nil)

		recorder := f.do(http.MethodPost, "/bookings/booking-1/cancel", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("not cancellable", func(t *testing.T) {
		f := newFixture(t)

		f.settlement.EXPECT().Cancel(gomock.Any(), "booking-1", gomock.Any()).
			Return(dto.BookingResponse{}, failure.InvalidState("booking is active"))

		recorder := f.do(http.MethodPost, "/bookings/booking-1/cancel", "")

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "INVALID_STATE", decodeError(t, recorder).Reason)
	})
}

func TestHandler_SettleBooking(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReason string
	}{
		{name: "settled", wantCode: http.StatusOK},
		{name: "already settled", err: failure.AlreadySettled("booking already settled"), wantCode: http.StatusConflict, wantReason: "ALREADY_SETTLED"},
		{name: "account not ready", err: failure.AccountNotReady("payouts disabled"), wantCode: http.StatusUnprocessableEntity, wantReason: "ACCOUNT_NOT_READY"},
		{name: "processor down", err: failure.ExternalProcessor(assert.AnError, true), wantCode: http.StatusBadGateway, wantReason: "EXTERNAL_PROCESSOR_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.settlement.EXPECT().Complete(gomock.Any(), "booking-1").
				Return(dto.BookingResponse{ID: "booking-1", Status: "completed", SettlementState: "settled"}, tt.err)

			recorder := f.do(http.MethodPost, "/bookings/booking-1/settle", "")

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, decodeError(t, recorder).Reason)
			}
		})
	}
}

func TestHandler_PreviewCancellation(t *testing.T) {
	f := newFixture(t)

	f.settlement.EXPECT().Preview(gomock.Any(), "booking-1").Return(dto.CancellationPreview{
		BookingID:         "booking-1",
		RefundPercentage:  50,
		RefundWalletCents: 3000,
		RefundCardCents:   2000,
		RefundTotalCents:  5000,
	}, nil)

	recorder := f.do(http.MethodGet, "/bookings/booking-1/cancellation-preview", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data dto.CancellationPreview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 50, body.Data.RefundPercentage)
	assert.Equal(t, int64(5000), body.Data.RefundTotalCents)
}
