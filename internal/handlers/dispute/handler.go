package dispute

import (
	"net/http"
	"renthubber/infras/otel"
	"renthubber/internal/domains/dispute/model/dto"
	"renthubber/internal/domains/dispute/service"
	"renthubber/shared/constant"
	"renthubber/shared/validator"
	"renthubber/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dispute
	otel    otel.Otel
}

func New(service service.Dispute, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/disputes", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.OpenDispute)
		routerGroup.Post("/{id}/resolve", handler.ResolveDispute)
	})
}

// OpenDispute
// @Summary Open a dispute
// @Description One side of a booking disputes it. Open disputes against a hubber block their payouts.
// @Tags Dispute
// @Accept json
// @Produce json
// @Param request body dto.OpenDisputeRequest true "Open Dispute Request"
// @Success 201 {object} dto.DisputeResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/disputes [post]
// @Security BearerAuth
func (handler *Handler) OpenDispute(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OpenDispute")
	defer scope.End()

	req := dto.OpenDisputeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	dispute, err := handler.service.Open(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to open dispute")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, dispute)
}

// ResolveDispute
// @Summary Resolve a dispute
// @Tags Dispute
// @Accept json
// @Produce json
// @Param id path string true "Dispute ID"
// @Param request body dto.ResolveDisputeRequest true "Resolve Dispute Request"
// @Success 200 {object} dto.DisputeResponse
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/disputes/{id}/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveDispute(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveDispute")
	defer scope.End()

	req := dto.ResolveDisputeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	dispute, err := handler.service.Resolve(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("dispute_id", id).Msg("failed to resolve dispute")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dispute)
}
