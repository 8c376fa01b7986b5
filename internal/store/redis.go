package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV is the redis-backed persistence backend, for deployments where the
// service itself is restarted or rescheduled and local disk does not persist.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := kv.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (kv *RedisKV) Set(ctx context.Context, key, value string) error {
	// No TTL: sessions are superseded by the next day's reset, not expired.
	if err := kv.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
