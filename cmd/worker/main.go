package main

import (
	"context"
	"os"
	"os/signal"
	"renthubber/config"
	"renthubber/di"
	"renthubber/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	log.Info().Msg("Settlement worker started.")

	worker.Run(ctx)

	log.Info().Msg("Settlement worker stopped.")
}
