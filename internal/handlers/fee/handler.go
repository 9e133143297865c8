package fee

import (
	"net/http"
	"renthubber/infras/otel"
	"renthubber/internal/domains/fee/model"
	"renthubber/internal/domains/fee/model/dto"
	"renthubber/internal/domains/fee/service"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/validator"
	"renthubber/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryParamUserID = "user_id"

type Handler struct {
	service service.Fee
	otel    otel.Otel
}

func New(service service.Fee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/fees/me", handler.GetMyFee)

	router.Route("/fee-overrides", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOverride)
		routerGroup.Get("/", handler.GetOverrides)
		routerGroup.Delete("/{id}", handler.DeactivateOverride)
	})
}

// GetMyFee resolves the commission that applies to the caller right now.
// @Summary Resolve the caller's fee
// @Tags Fee
// @Produce json
// @Param role query string true "renter or hubber"
// @Success 200 {object} dto.ResolutionResponse
// @Failure 400 {object} response.Error
// @Router /v1/fees/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyFee(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyFee")
	defer scope.End()

	role := model.Role(request.URL.Query().Get(constant.RequestParamRole))
	if !role.Valid() {
		response.WithError(writer, failure.BadRequestFromString("role must be one of renter hubber"))

		return
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	resolution, err := handler.service.Resolve(ctx, userID, role)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", userID).Msg("failed to resolve fee")

		response.WithError(writer, err)

		return
	}

	res := dto.ResolutionResponse{}
	res.FromModel(resolution)

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateOverride
// @Summary Create a fee override
// @Description Give a user custom commission percentages or waive fees for a period.
// @Tags Fee
// @Accept json
// @Produce json
// @Param request body dto.CreateOverrideRequest true "Create Override Request"
// @Success 201 {object} dto.OverrideResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/fee-overrides [post]
// @Security BearerAuth
func (handler *Handler) CreateOverride(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOverride")
	defer scope.End()

	req := dto.CreateOverrideRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	override, err := handler.service.CreateOverride(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create fee override")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, override)
}

// GetOverrides
// @Summary List fee overrides
// @Tags Fee
// @Produce json
// @Param user_id query string false "Filter by user"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetOverridesResponse
// @Router /v1/fee-overrides [get]
// @Security BearerAuth
func (handler *Handler) GetOverrides(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverrides")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	overrides, err := handler.service.ListOverrides(ctx, request.URL.Query().Get(queryParamUserID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list fee overrides")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, overrides)
}

// DeactivateOverride
// @Summary Deactivate a fee override
// @Tags Fee
// @Produce json
// @Param id path string true "Override ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/fee-overrides/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivateOverride(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateOverride")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.DeactivateOverride(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("override_id", id).Msg("failed to deactivate fee override")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Fee override deactivated")
}
