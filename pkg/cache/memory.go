package cache

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"bilemo-api/pkg/metrics"
	"bilemo-api/pkg/utils"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/viccon/sturdyc"
	"go.uber.org/zap"
)

type MemoryConfig struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

func DefaultMemoryConfig(c utils.CacheConfig) MemoryConfig {
	return MemoryConfig{
		Capacity:           c.Capacity,
		NumShards:          64,
		TTL:                c.TTL(),
		EvictionPercentage: 10,
	}
}

func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return errors.New("cache capacity must be greater than 0")
	}
	if c.NumShards <= 0 {
		return errors.New("cache shards must be greater than 0")
	}
	if c.TTL <= 0 {
		return errors.New("cache ttl must be greater than 0")
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return errors.New("cache eviction percentage must be between 1 and 100")
	}
	return nil
}

// MemoryCache keeps entries in a sturdyc client and tracks which keys were
// stored under each tag. Every tag also carries a generation that
// InvalidateTags bumps, so a value computed across an invalidation is dropped
// instead of served until its TTL.
type MemoryCache struct {
	client   *sturdyc.Client[[]byte]
	tags     *xsync.MapOf[string, *xsync.MapOf[string, struct{}]]
	gens     *xsync.MapOf[string, *atomic.Uint64]
	capacity int
	log      *zap.Logger
}

func NewMemoryCache(config MemoryConfig, log *zap.Logger) (*MemoryCache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MemoryCache{
		client:   sturdyc.New[[]byte](config.Capacity, config.NumShards, config.TTL, config.EvictionPercentage),
		tags:     xsync.NewMapOf[string, *xsync.MapOf[string, struct{}]](),
		gens:     xsync.NewMapOf[string, *atomic.Uint64](),
		capacity: config.Capacity,
		log:      log.With(zap.String("cache", "memory")),
	}, nil
}

func (m *MemoryCache) GetOrCompute(ctx context.Context, key string, tags []string, compute ComputeFn) ([]byte, error) {
	hit := true
	var before []uint64

	value, err := m.client.GetOrFetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		hit = false
		before = m.generations(tags)
		return compute(ctx)
	})
	if err != nil {
		metrics.CacheResults.WithLabelValues("memory", "error").Inc()
		return nil, err
	}

	if hit {
		metrics.CacheResults.WithLabelValues("memory", "hit").Inc()
		return value, nil
	}

	metrics.CacheResults.WithLabelValues("memory", "miss").Inc()
	m.log.Debug("Cache miss", zap.String("key", key), zap.Strings("tags", tags))

	// The client stored the value before returning, so it is indexed first and
	// the generations are read afterwards.
	m.index(key, tags)
	if !slices.Equal(before, m.generations(tags)) {
		m.drop(key, tags)
		m.log.Debug("Dropped value computed across an invalidation", zap.String("key", key))
	}

	return value, nil
}

func (m *MemoryCache) generation(tag string) *atomic.Uint64 {
	gen, _ := m.gens.LoadOrCompute(tag, func() *atomic.Uint64 {
		return new(atomic.Uint64)
	})
	return gen
}

func (m *MemoryCache) generations(tags []string) []uint64 {
	out := make([]uint64, len(tags))
	for i, tag := range tags {
		out[i] = m.generation(tag).Load()
	}
	return out
}

func (m *MemoryCache) index(key string, tags []string) {
	for _, tag := range tags {
		keys, _ := m.tags.LoadOrCompute(tag, func() *xsync.MapOf[string, struct{}] {
			return xsync.NewMapOf[string, struct{}]()
		})
		keys.Store(key, struct{}{})

		if keys.Size() > 2*m.capacity {
			m.prune(tag, keys)
		}
	}
}

// prune forgets keys the client has already evicted or expired. Keys are
// indexed only after the client stored them, so a miss here is final.
func (m *MemoryCache) prune(tag string, keys *xsync.MapOf[string, struct{}]) {
	dropped := 0
	keys.Range(func(key string, _ struct{}) bool {
		if _, ok := m.client.Get(key); !ok {
			keys.Delete(key)
			dropped++
		}
		return true
	})
	m.log.Debug("Pruned tag index", zap.String("tag", tag), zap.Int("keys", dropped))
}

func (m *MemoryCache) drop(key string, tags []string) {
	m.client.Delete(key)
	for _, tag := range tags {
		if keys, ok := m.tags.Load(tag); ok {
			keys.Delete(key)
		}
	}
}

func (m *MemoryCache) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		m.generation(tag).Add(1)

		keys, ok := m.tags.LoadAndDelete(tag)
		if !ok {
			continue
		}

		evicted := 0
		keys.Range(func(key string, _ struct{}) bool {
			m.client.Delete(key)
			evicted++
			return true
		})

		metrics.CacheInvalidations.WithLabelValues(tag).Inc()
		m.log.Debug("Cache tag invalidated", zap.String("tag", tag), zap.Int("keys", evicted))
	}
	return nil
}

// indexedKeys reports how many keys the tag index holds for tag.
func (m *MemoryCache) indexedKeys(tag string) int {
	keys, ok := m.tags.Load(tag)
	if !ok {
		return 0
	}
	return keys.Size()
}

// Size returns the number of live entries.
func (m *MemoryCache) Size() int {
	return len(m.client.ScanKeys())
}
