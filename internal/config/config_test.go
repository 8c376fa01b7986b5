package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "daily-riddle", cfg.Name)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "assets/puzzles.json", cfg.Pool.Path)
	assert.Equal(t, 1200*time.Millisecond, cfg.Game.SettleDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SETTLE_DELAY_MS", "300ms")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 300*time.Millisecond, cfg.Game.SettleDelay)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "carrier-pigeon")
	_, err := Load(context.Background())
	assert.ErrorContains(t, err, "unknown store backend")
}
