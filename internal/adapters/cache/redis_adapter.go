package cache

import (
	"context"
	"time"

	"github.com/medigate/clinic-navigator/internal/domain/providers"
	redisclient "github.com/medigate/clinic-navigator/internal/infrastructure/clients/redis"
	"github.com/medigate/clinic-navigator/pkg/errors"
)

// RedisAdapter implements the CacheProvider interface using Redis
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{client: client}
}

// Get retrieves a value from the cache
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := a.client.Client().Get(ctx, key).Bytes()
	if err != nil {
		return nil, errors.NewNotFoundError("cache key not found: " + key)
	}
	return val, nil
}

// Set stores a value in the cache with an expiration in seconds
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	expiration := time.Duration(expirationSeconds) * time.Second
	if err := a.client.Client().Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewInternalError("failed to set cache value", err)
	}
	return nil
}

// Delete removes a value from the cache
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, key).Err(); err != nil {
		return errors.NewInternalError("failed to delete cache value", err)
	}
	return nil
}

// Exists checks whether a key exists in the cache
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := a.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, errors.NewInternalError("failed to check cache key", err)
	}
	return n > 0, nil
}
