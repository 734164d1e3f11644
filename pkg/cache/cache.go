package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"bilemo-api/pkg/database"
	"bilemo-api/pkg/utils"

	"go.uber.org/zap"
)

// Invalidation tags, one per entity type.
const (
	TagCustomers = "customersCache"
	TagPhones    = "phonesCache"
	TagUsers     = "usersCache"
)

// ComputeFn produces the serialized value for a missing key.
type ComputeFn func(ctx context.Context) ([]byte, error)

// TagAwareCache stores serialized values labelled with tags. Invalidating a
// tag evicts every entry stored under it.
type TagAwareCache interface {
	GetOrCompute(ctx context.Context, key string, tags []string, compute ComputeFn) ([]byte, error)
	InvalidateTags(ctx context.Context, tags ...string) error
}

// Remember returns the value cached under key, or runs fetch and caches it.
// The value always goes through JSON, so every caller gets its own copy.
func Remember[T any](ctx context.Context, c TagAwareCache, key string, tags []string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var out T

	raw, err := c.GetOrCompute(ctx, key, tags, func(ctx context.Context) ([]byte, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode cached %s: %w", key, err)
	}

	return out, nil
}

// New builds the backend selected by CACHE_DRIVER.
func New(config *utils.Config, log *zap.Logger) (TagAwareCache, error) {
	switch config.Cache.Driver {
	case utils.CacheDriverRedis:
		client, err := database.InitRedis(config.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisCache(client, config.Cache.TTL(), log), nil
	default:
		return NewMemoryCache(DefaultMemoryConfig(config.Cache), log)
	}
}
