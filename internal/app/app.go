package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/puzzleworks/daily-riddle/internal/config"
	"github.com/puzzleworks/daily-riddle/internal/game"
	"github.com/puzzleworks/daily-riddle/internal/logging"
	"github.com/puzzleworks/daily-riddle/internal/puzzle"
	"github.com/puzzleworks/daily-riddle/internal/server"
	"github.com/puzzleworks/daily-riddle/internal/store"
	"github.com/puzzleworks/daily-riddle/internal/verify"
)

// Application aggregates the loaded pool, persistence backend and HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, the puzzle pool, the persistence backend and
// the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := puzzle.LoadFile(cfg.Pool.Path)
	if err != nil {
		return nil, fmt.Errorf("load puzzle pool: %w", err)
	}
	logger.Info().Int("puzzles", pool.Len()).Str("path", cfg.Pool.Path).Msg("puzzle pool loaded")

	var kv store.KV
	var redisClient *redis.Client
	switch cfg.Store.Backend {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		kv = store.NewRedisKV(redisClient)
	default:
		fileKV, err := store.OpenFileKV(cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		kv = fileKV
	}

	verifier := verify.New(verify.SHA256Digester{}, logger)

	manager := game.NewManager(
		pool,
		func(deviceID string) game.SessionStore {
			return store.NewDayStore(kv, deviceID, logger)
		},
		verifier,
		game.ManagerOptions{SettleDelay: cfg.Game.SettleDelay},
		logger,
	)

	handlers := server.NewHandlers(manager, logger)

	return &Application{
		cfg:    cfg,
		logger: logger,
		redis:  redisClient,
		http:   server.NewHTTPServer(cfg, logger, handlers),
	}, nil
}

// Run serves HTTP until a shutdown signal or server error.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
