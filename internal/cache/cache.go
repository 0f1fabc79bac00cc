// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps recently retrieved listing batches for a bounded
// time, keyed by source and query. It only saves network round trips:
// every caller must behave the same with the cache disabled.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/pkg/types"
)

// Cache stores listing batches with an expiry.
type Cache interface {
	// Get returns the listings stored under key. ok is false on a miss or
	// when the entry has expired.
	Get(ctx context.Context, key string) (listings []types.Listing, ok bool, err error)

	// Set stores listings under key for the cache's TTL.
	Set(ctx context.Context, key string, listings []types.Listing) error

	Close() error
}

// DefaultTTL applies when the configuration leaves TTL unset.
const DefaultTTL = 30 * time.Minute

// Key builds the cache key for a source and canonical query string.
func Key(source, query string) string {
	return "listings:" + strings.ToLower(source) + ":" + query
}

// New opens the backend selected by cfg. A "none" backend returns a nil
// Cache. redisPassword is only used by the redis backend.
func New(ctx context.Context, cfg types.CacheConfig, redisPassword string, logger *zap.Logger) (Cache, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	switch cfg.Backend {
	case types.CacheNone:
		return nil, nil
	case types.CacheMemory, "":
		return NewMemory(ttl), nil
	case types.CacheSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite cache needs a path")
		}
		s, err := OpenSQLite(cfg.Path, ttl)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.CacheRedis:
		r, err := NewRedis(ctx, cfg, redisPassword, ttl, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
