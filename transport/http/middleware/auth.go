package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"renthubber/config"
	"renthubber/infras/jwt"
	"renthubber/infras/otel"
	"renthubber/permissions"
	"renthubber/shared"
	"renthubber/shared/constant"
	"renthubber/shared/failure"
	"renthubber/transport/http/response"
)

// internalCaller marks requests already authenticated by API key.
type internalCaller struct{}

// tokenErrors maps token validation errors to client messages, most specific first.
var tokenErrors = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "Token has expired"},
	{jwt.ErrInvalidClaim, "Invalid token claims"},
	{jwt.ErrInvalidToken, "Invalid token"},
}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	apiKey     []byte
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		apiKey:     []byte(cfg.App.APIKey),
	}
}

// route returns the chi pattern that will serve r, e.g. /v1/bookings/{id}.
func route(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return r.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)
}

func (m *authRoleImpl) lookup(r *http.Request) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	return m.permission.FindPermissions(route(r), r.Method)
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCaller{}).(bool)

	return internal
}

func tokenMessage(err error) string {
	for _, known := range tokenErrors {
		if errors.Is(err, known.err) {
			return known.message
		}
	}

	return "Token validation failed"
}

// Auth validates the bearer token and puts the caller's identity on the context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		if isInternal(ctx) || m.lookup(request).Skip {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"http.route":  route(request),
			"http.method": request.Method,
		})

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, failure.Unauthorized("Missing or malformed authorization header"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString)
		if err != nil {
			scope.TraceError(err)
			log.Debug().Err(err).Msg("rejected bearer token")
			response.WithError(writer, failure.Unauthorized(tokenMessage(err)))

			return
		}

		scope.SetAttribute("user.role", claims.Role)

		ctx = context.WithValue(request.Context(), constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller's role against permissions.json. Routes without an
// entry are open to any authenticated caller. Requires Auth first.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		if isInternal(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		permission := m.lookup(request)
		if m.permission.Skip || permission.Skip || len(permission.Permissions) == 0 {
			next.ServeHTTP(writer, request)

			return
		}

		_, userRole := shared.Actor(ctx)
		if slices.Contains(permission.Permissions, userRole) {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"user.role":     userRole,
			"allowed_roles": permission.Permissions,
		})
		scope.TraceError(failure.ForbiddenError)

		response.WithError(writer, failure.ForbiddenError)
	})
}

// APIKey lets internal services call the API as the platform itself. Without
// the header the request continues to Auth unchanged.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			next.ServeHTTP(writer, request)

			return
		}

		if len(m.apiKey) == 0 || subtle.ConstantTimeCompare([]byte(apiKey), m.apiKey) != 1 {
			log.Warn().Str("route", route(request)).Msg("rejected api key")
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		ctx := shared.SystemContext(request.Context())
		ctx = context.WithValue(ctx, internalCaller{}, true)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
