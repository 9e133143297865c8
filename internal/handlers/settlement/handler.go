package settlement

import (
	"net/http"
	"renthubber/infras/otel"
	"renthubber/internal/domains/settlement/service"
	"renthubber/shared/constant"
	"renthubber/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Settlement
	otel    otel.Otel
}

func New(service service.Settlement, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/settlements/reconcile", handler.Reconcile)
}

// Reconcile runs one reconciliation pass now instead of waiting for the worker.
// @Summary Reconcile stuck settlements
// @Tags Settlement
// @Produce json
// @Success 200 {object} model.ReconcileResult
// @Router /v1/settlements/reconcile [post]
// @Security BearerAuth
func (handler *Handler) Reconcile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reconcile")
	defer scope.End()

	result, err := handler.service.Reconcile(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile settlements")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, result)
}
