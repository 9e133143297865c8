package ledger

import (
	"net/http"
	"renthubber/infras/otel"
	"renthubber/internal/domains/ledger/service"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/transactions", handler.GetTransactions)
}

// GetTransactions lists the caller's wallet and balance movements, newest first.
// @Summary List the caller's transactions
// @Tags Ledger
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetTransactionsResponse
// @Router /v1/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	transactions, err := handler.service.List(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list transactions")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, transactions)
}
