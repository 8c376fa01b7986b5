package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds runtime configuration for the daily riddle service.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"daily-riddle"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Pool  Pool
	Store Store
	Redis Redis
	Game  Game
}

// Pool locates the static puzzle dataset.
type Pool struct {
	Path string `env:"POOL_PATH" envDefault:"assets/puzzles.json"`
}

// Store selects the persistence backend for day sessions.
type Store struct {
	Backend string `env:"STORE_BACKEND" envDefault:"file"` // "file" or "redis"
	Dir     string `env:"STORE_DIR" envDefault:"data"`
}

// Redis holds connection info for the redis store backend.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

// Game groups gameplay timing knobs. The scheduling seed and epoch are not
// configurable: every client must agree on them, so they are compiled in.
type Game struct {
	SettleDelay time.Duration `env:"SETTLE_DELAY_MS" envDefault:"1200ms"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Store.Backend != "file" && cfg.Store.Backend != "redis" {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return cfg, nil
}
