package account

import (
	"net/http"
	"renthubber/infras/otel"
	"renthubber/internal/domains/account/service"
	"renthubber/shared/constant"
	"renthubber/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Account
	otel    otel.Otel
}

func New(service service.Account, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accounts", func(routerGroup chi.Router) {
		routerGroup.Post("/onboarding", handler.StartOnboarding)
		routerGroup.Get("/status", handler.GetStatus)
	})
}

// StartOnboarding creates the caller's connected account if needed and returns an onboarding link.
// @Summary Start connected account onboarding
// @Tags Account
// @Produce json
// @Success 200 {object} dto.OnboardingResponse
// @Failure 502 {object} response.Error
// @Router /v1/accounts/onboarding [post]
// @Security BearerAuth
func (handler *Handler) StartOnboarding(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartOnboarding")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	link, err := handler.service.Onboard(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("failed to start onboarding")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, link)
}

// GetStatus
// @Summary Connected account status
// @Tags Account
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /v1/accounts/status [get]
// @Security BearerAuth
func (handler *Handler) GetStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatus")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	status, err := handler.service.Status(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get account status")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, status)
}
