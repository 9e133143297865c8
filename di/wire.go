//go:build wireinject
// +build wireinject

package di

import (
	"renthubber/config"
	"renthubber/infras/jwt"
	"renthubber/infras/kafka"
	"renthubber/infras/otel"
	"renthubber/infras/postgres"
	"renthubber/infras/redis"
	"renthubber/infras/s3"
	"renthubber/infras/stripe"
	"renthubber/permissions"
	"renthubber/shared/cache"
	"renthubber/transport/event"
	"renthubber/transport/http"
	"renthubber/transport/http/middleware"
	"renthubber/transport/http/router"

	accountService "renthubber/internal/domains/account/service"
	bookingRepository "renthubber/internal/domains/booking/repository"
	bookingService "renthubber/internal/domains/booking/service"
	disputeRepository "renthubber/internal/domains/dispute/repository"
	disputeService "renthubber/internal/domains/dispute/service"
	feeRepository "renthubber/internal/domains/fee/repository"
	feeService "renthubber/internal/domains/fee/service"
	ledgerRepository "renthubber/internal/domains/ledger/repository"
	ledgerService "renthubber/internal/domains/ledger/service"
	payoutRepository "renthubber/internal/domains/payout/repository"
	payoutService "renthubber/internal/domains/payout/service"
	settlementService "renthubber/internal/domains/settlement/service"
	userRepository "renthubber/internal/domains/user/repository"
	userService "renthubber/internal/domains/user/service"

	accountHandler "renthubber/internal/handlers/account"
	bookingHandler "renthubber/internal/handlers/booking"
	disputeHandler "renthubber/internal/handlers/dispute"
	feeHandler "renthubber/internal/handlers/fee"
	ledgerHandler "renthubber/internal/handlers/ledger"
	payoutHandler "renthubber/internal/handlers/payout"
	settlementHandler "renthubber/internal/handlers/settlement"
	userHandler "renthubber/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var feeDomain = wire.NewSet(
	feeRepository.New,
	feeService.New,
)

var ledgerDomain = wire.NewSet(
	ledgerRepository.New,
	ledgerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var disputeDomain = wire.NewSet(
	disputeRepository.New,
	disputeService.New,
)

var payoutDomain = wire.NewSet(
	payoutRepository.New,
	payoutService.New,
)

var domains = wire.NewSet(
	userDomain,
	feeDomain,
	ledgerDomain,
	bookingDomain,
	disputeDomain,
	payoutDomain,
	accountService.New,
	settlementService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	settlementHandler.New,
	feeHandler.New,
	payoutHandler.New,
	accountHandler.New,
	disputeHandler.New,
	ledgerHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *event.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		postgres.NewTransactor,
		otel.New,
		redis.New,
		kafka.New,
		s3.New,
		stripe.New,
		sharedHelpers,
		domains,
		event.New,
	)

	return &event.Worker{}
}
