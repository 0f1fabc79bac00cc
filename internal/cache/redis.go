// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/pkg/types"
)

const defaultRedisAddr = "localhost:6379"

// Redis shares cached batches between processes through a Redis server.
// Entries expire server-side after the TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis connects to the server named in cfg and checks it responds.
func NewRedis(ctx context.Context, cfg types.CacheConfig, password string, ttl time.Duration, logger *zap.Logger) (*Redis, error) {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = defaultRedisAddr
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return NewRedisWithClient(client, ttl, logger), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, ttl: ttl, logger: logger}
}

// Get returns the entry for key.
func (r *Redis) Get(ctx context.Context, key string) ([]types.Listing, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var listings []types.Listing
	if err := json.Unmarshal(b, &listings); err != nil {
		r.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = r.client.Del(ctx, key).Err()
		return nil, false, nil
	}
	return listings, true, nil
}

// Set stores listings under key with the cache TTL.
func (r *Redis) Set(ctx context.Context, key string, listings []types.Listing) error {
	b, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
