package cache

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"bilemo-api/pkg/database"
	"bilemo-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

func TestRedisCache_Integration(t *testing.T) {
	if os.Getenv("RUN_REDIS_INTEGRATION") != "true" {
		t.Skip("set RUN_REDIS_INTEGRATION=true to run this integration test")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := database.InitRedis(utils.RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	c := NewRedisCache(client, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	// unique tag and key so parallel runs do not collide
	tag := "phonesCache-" + uuid.NewString()
	key := "getAllPhone1-10-" + uuid.NewString()
	var calls atomic.Int32

	for i := 0; i < 2; i++ {
		got, err := c.GetOrCompute(ctx, key, []string{tag}, countingCompute(&calls, "page"))
		if err != nil || string(got) != "page" {
			t.Fatalf("GetOrCompute: %q, %v", got, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one compute, got %d", n)
	}

	if err := c.InvalidateTags(ctx, tag); err != nil {
		t.Fatalf("InvalidateTags: %v", err)
	}
	if _, err := c.GetOrCompute(ctx, key, []string{tag}, countingCompute(&calls, "page")); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("expected a recompute after invalidation, got %d", n)
	}

	_ = c.InvalidateTags(ctx, tag)
}
