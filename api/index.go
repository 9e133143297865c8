package handler

import (
	"net/http"
	"renthubber/config"
	"renthubber/di"
	"renthubber/shared/logger"
	"sync"
)

var (
	server http.Handler
	once   sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the first request only.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
