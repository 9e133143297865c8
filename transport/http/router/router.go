package router

import (
	"net/http"
	"renthubber/config"
	"renthubber/internal/handlers/account"
	"renthubber/internal/handlers/booking"
	"renthubber/internal/handlers/dispute"
	"renthubber/internal/handlers/fee"
	"renthubber/internal/handlers/ledger"
	"renthubber/internal/handlers/payout"
	"renthubber/internal/handlers/settlement"
	"renthubber/internal/handlers/user"
	"renthubber/transport/http/middleware"

	// registers the generated OpenAPI document with swag
	_ "renthubber/docs"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Booking    booking.Handler
	Settlement settlement.Handler
	Fee        fee.Handler
	Payout     payout.Handler
	Account    account.Handler
	Dispute    dispute.Handler
	Ledger     ledger.Handler
	User       user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	authRole       middleware.AuthRole
	cfg            *config.Config
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		authRole:       authRole,
		cfg:            cfg,
	}
}

func (r *Router) corsHandler() func(http.Handler) http.Handler {
	corsConfig := r.cfg.App.CORS

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})
}

// SetupRoutes mounts the operational endpoints at the root and the API under /v1.
func (r *Router) SetupRoutes(router chi.Router) {
	if r.cfg.App.CORS.Enable {
		router.Use(r.corsHandler())
	}

	router.Use(chiMiddleware.Recoverer, r.app.RequestID, r.app.Tracing, r.app.Metrics)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.app.RateLimit(), r.authRole.APIKey, r.authRole.Auth, r.authRole.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Settlement.Router(routerGroup)
		r.DomainHandlers.Fee.Router(routerGroup)
		r.DomainHandlers.Payout.Router(routerGroup)
		r.DomainHandlers.Account.Router(routerGroup)
		r.DomainHandlers.Dispute.Router(routerGroup)
		r.DomainHandlers.Ledger.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}
