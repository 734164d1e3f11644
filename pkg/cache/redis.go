package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bilemo-api/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisPrefix = "bilemo:cache:"

// RedisCache shares list pages between instances. Each tag is a redis set
// holding the keys stored under it.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "redis")),
	}
}

func entryKey(key string) string { return redisPrefix + "entry:" + key }
func tagKey(tag string) string   { return redisPrefix + "tag:" + tag }

func (c *RedisCache) GetOrCompute(ctx context.Context, key string, tags []string, compute ComputeFn) ([]byte, error) {
	raw, err := c.client.Get(ctx, entryKey(key)).Bytes()
	if err == nil {
		metrics.CacheResults.WithLabelValues("redis", "hit").Inc()
		return raw, nil
	}
	if !errors.Is(err, redis.Nil) {
		// serve from the database while redis is unavailable
		metrics.CacheResults.WithLabelValues("redis", "error").Inc()
		c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return compute(ctx)
	}

	metrics.CacheResults.WithLabelValues("redis", "miss").Inc()

	raw, err = compute(ctx)
	if err != nil {
		return nil, err
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, entryKey(key), raw, c.ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagKey(tag), entryKey(key))
			pipe.Expire(ctx, tagKey(tag), c.ttl)
		}
		return nil
	})
	if err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}

	return raw, nil
}

func (c *RedisCache) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		keys, err := c.client.SMembers(ctx, tagKey(tag)).Result()
		if err != nil {
			return fmt.Errorf("read cache tag %s: %w", tag, err)
		}

		keys = append(keys, tagKey(tag))
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("invalidate cache tag %s: %w", tag, err)
		}

		metrics.CacheInvalidations.WithLabelValues(tag).Inc()
		c.log.Debug("Cache tag invalidated", zap.String("tag", tag), zap.Int("keys", len(keys)-1))
	}
	return nil
}
