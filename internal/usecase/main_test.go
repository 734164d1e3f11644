package usecase

import (
	"testing"
	"time"

	"bilemo-api/internal/testsupport"
	"bilemo-api/pkg/cache"

	"go.uber.org/zap"
)

type testEnv struct {
	store *testsupport.Store
	cache *cache.MemoryCache
	svc   *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	c, err := cache.NewMemoryCache(cache.MemoryConfig{
		Capacity:           1000,
		NumShards:          4,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	store := testsupport.NewStore()
	repo := store.Repository()
	tokens := NewTokenManager("test-secret", "bilemo-test", time.Hour)
	log := zap.NewNop()

	return &testEnv{
		store: store,
		cache: c,
		svc: &Service{
			Auth:     NewAuthService(repo, c, tokens, log),
			Customer: NewCustomerService(repo, c, log),
			Phone:    NewPhoneService(repo, c, log),
			User:     NewUserService(repo, c, log),
		},
	}
}

func ptr[T any](v T) *T { return &v }
