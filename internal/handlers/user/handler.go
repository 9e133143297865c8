package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"renthubber/infras/otel"
	"renthubber/internal/domains/user/service"
	"renthubber/shared"
	"renthubber/shared/constant"
	"renthubber/shared/failure"
	"renthubber/transport/http/response"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/me", handler.GetMe)
	})
}

// GetMe returns the caller's profile with their wallet and balance.
// @Summary Get the caller's profile
// @Tags User
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} response.Error
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) GetMe(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMe")
	defer scope.End()

	userID, role := shared.Actor(ctx)
	scope.SetAttribute("user.role", role)

	profile, err := handler.service.Profile(ctx, userID)
	if err != nil {
		scope.TraceError(err)

		if failure.GetCode(err) >= http.StatusInternalServerError {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to load profile")
		}

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, profile)
}
