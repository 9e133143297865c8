package booking

import (
	"context"
	"net/http"
	"renthubber/infras/otel"
	"renthubber/internal/domains/booking/model/dto"
	"renthubber/internal/domains/booking/service"
	settlementService "renthubber/internal/domains/settlement/service"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/validator"
	"renthubber/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	settlement settlementService.Settlement
	otel       otel.Otel
}

func New(service service.Booking, settlement settlementService.Settlement, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		settlement: settlement,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/accept", handler.AcceptBooking)
		routerGroup.Post("/{id}/start", handler.StartBooking)
		routerGroup.Post("/{id}/complete", handler.CompleteBooking)
		routerGroup.Get("/{id}/cancellation-preview", handler.PreviewCancellation)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/settle", handler.SettleBooking)
	})
}

// CreateBooking handles a renter booking a listing.
// @Summary Create a booking
// @Description Price and store a booking. The wallet part of the payment is taken immediately.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + booking.ID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists the caller's bookings. Admins see every booking.
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	status := request.URL.Query().Get(constant.RequestParamStatus)
	if status != "" {
		if err := validator.ValidateVar(status, "oneof=pending accepted confirmed active completed cancelled"); err != nil {
			response.WithError(writer, err)

			return
		}
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetBookingByID
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// transition runs one of the lifecycle moves that only take the booking id.
func (handler *Handler) transition(writer http.ResponseWriter, request *http.Request, action string, move func(ctx context.Context, id string) (dto.BookingResponse, error)) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+action)
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := move(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msgf("failed to %s booking", action)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + id + " is now " + booking.Status)

	response.WithJSON(writer, http.StatusOK, booking)
}

// AcceptBooking
// @Summary Accept a booking request
// @Description The hubber accepts a pending booking.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/accept [post]
// @Security BearerAuth
func (handler *Handler) AcceptBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "accept", handler.service.Accept)
}

// StartBooking
// @Summary Start a rental
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/start [post]
// @Security BearerAuth
func (handler *Handler) StartBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "start", handler.service.Start)
}

// CompleteBooking
// @Summary Complete a rental
// @Description Marks the rental finished. The hubber payout is settled asynchronously.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "complete", handler.service.Complete)
}

// SettleBooking pays the hubber of a completed booking now instead of waiting for the worker.
// @Summary Settle a completed booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 409 {object} response.Error "INVALID_STATE or ALREADY_SETTLED"
// @Failure 422 {object} response.Error "ACCOUNT_NOT_READY"
// @Failure 502 {object} response.Error "EXTERNAL_PROCESSOR_ERROR"
// @Router /v1/bookings/{id}/settle [post]
// @Security BearerAuth
func (handler *Handler) SettleBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "settle", handler.settlement.Complete)
}

// PreviewCancellation shows the refund a cancellation by the caller would produce.
// @Summary Preview a cancellation
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.CancellationPreview
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancellation-preview [get]
// @Security BearerAuth
func (handler *Handler) PreviewCancellation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PreviewCancellation")
	defer scope.End()

	preview, err := handler.settlement.Preview(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to preview cancellation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, preview)
}

// CancelBooking
// @Summary Cancel a booking
// @Description Cancels the booking and refunds the renter according to the cancellation policy.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest false "Cancel Booking Request"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	req := dto.CancelBookingRequest{}

	// the body is optional
	if request.ContentLength != 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.settlement.Cancel(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + id + " cancelled")

	response.WithJSON(writer, http.StatusOK, booking)
}
