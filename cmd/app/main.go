package main

import (
	"renthubber/config"
	"renthubber/di"
	"renthubber/helper"
	"renthubber/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title RentHubber API
// @version 1.0
// @description Bookings, cancellation refunds, hubber settlements and payouts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
