package payout

import (
	"net/http"
	"renthubber/infras/otel"
	"renthubber/internal/domains/payout/model/dto"
	"renthubber/internal/domains/payout/service"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/validator"
	"renthubber/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payout
	otel    otel.Otel
}

func New(service service.Payout, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payouts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePayout)
		routerGroup.Get("/", handler.GetPayouts)
		routerGroup.Get("/{id}", handler.GetPayoutByID)
		routerGroup.Post("/{id}/approve", handler.ApprovePayout)
		routerGroup.Post("/{id}/reject", handler.RejectPayout)
	})
}

// CreatePayout
// @Summary Request a payout
// @Description A hubber asks to withdraw part of their balance.
// @Tags Payout
// @Accept json
// @Produce json
// @Param request body dto.CreatePayoutRequest true "Create Payout Request"
// @Success 201 {object} dto.PayoutResponse
// @Failure 400 {object} response.Error "INVALID_AMOUNT"
// @Failure 422 {object} response.Error "INSUFFICIENT_BALANCE"
// @Router /v1/payouts [post]
// @Security BearerAuth
func (handler *Handler) CreatePayout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePayout")
	defer scope.End()

	req := dto.CreatePayoutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	payout, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payout request")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, payout)
}

// GetPayouts
// @Summary List payout requests
// @Description Hubbers see their own requests. Admins see every request.
// @Tags Payout
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetPayoutsResponse
// @Router /v1/payouts [get]
// @Security BearerAuth
func (handler *Handler) GetPayouts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayouts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	status := request.URL.Query().Get(constant.RequestParamStatus)
	if status != "" {
		if err := validator.ValidateVar(status, "oneof=pending processing approved rejected"); err != nil {
			response.WithError(writer, err)

			return
		}
	}

	payouts, err := handler.service.GetAll(ctx, queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payout requests")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payouts)
}

// GetPayoutByID
// @Summary Get a payout request
// @Tags Payout
// @Produce json
// @Param id path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payouts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPayoutByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayoutByID")
	defer scope.End()

	payout, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payout request")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payout)
}

// ApprovePayout
// @Summary Approve a payout request
// @Description Pays the amount out to the hubber's connected account and debits their balance.
// @Tags Payout
// @Produce json
// @Param id path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 409 {object} response.Error "INVALID_STATE or OPEN_DISPUTE_BLOCK"
// @Failure 422 {object} response.Error "ACCOUNT_NOT_READY or INSUFFICIENT_BALANCE"
// @Failure 502 {object} response.Error "EXTERNAL_PROCESSOR_ERROR"
// @Router /v1/payouts/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApprovePayout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApprovePayout")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	payout, err := handler.service.Approve(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("payout_id", id).Msg("failed to approve payout request")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payout " + id + " approved")

	response.WithJSON(writer, http.StatusOK, payout)
}

// RejectPayout
// @Summary Reject a payout request
// @Tags Payout
// @Accept json
// @Produce json
// @Param id path string true "Payout ID"
// @Param request body dto.RejectPayoutRequest true "Reject Payout Request"
// @Success 200 {object} dto.PayoutResponse
// @Failure 409 {object} response.Error "INVALID_STATE"
// @Router /v1/payouts/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectPayout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectPayout")
	defer scope.End()

	req := dto.RejectPayoutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	payout, err := handler.service.Reject(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("payout_id", id).Msg("failed to reject payout request")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payout)
}
