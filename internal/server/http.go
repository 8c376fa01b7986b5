package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/puzzleworks/daily-riddle/internal/config"
)

// NewHTTPServer wires the game API routes plus health and metrics.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers *Handlers) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(logger, handlers),
	}
}

// NewRouter builds the route table; split out so tests can drive it through
// httptest without binding a port.
func NewRouter(logger zerolog.Logger, handlers *Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/today", handlers.Today)
	mux.HandleFunc("/v1/guess", handlers.Guess)
	mux.HandleFunc("/v1/hint", handlers.Hint)
	mux.HandleFunc("/v1/share", handlers.Share)
	mux.HandleFunc("/ws/countdown", handlers.Countdown)

	return requestLog(logger, mux)
}

func requestLog(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r)
	})
}
