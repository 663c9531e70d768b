package doccache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/doccache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestNilCache(t *testing.T) {
	c := doccache.New(doccache.Options{}, zap.NewNop())
	if c != nil {
		t.Fatal("expected nil cache when Addr is empty")
	}
	ctx := context.Background()

	var dest map[string]string
	if c.Get(ctx, "k", &dest) {
		t.Error("nil cache must always miss")
	}
	c.Set(ctx, "k", map[string]string{"a": "b"})
	c.Delete(ctx, "k")
	if err := c.Ping(ctx); err != nil {
		t.Errorf("nil cache Ping: %v", err)
	}
	if c.Enabled() {
		t.Error("nil cache should not report enabled")
	}
	if err := c.Close(); err != nil {
		t.Errorf("nil cache Close: %v", err)
	}
}

// TestRedisRoundTrip runs only when REDIS_TEST_ADDR points at a server.
func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	c := doccache.New(doccache.Options{Addr: addr, Prefix: "wardshift-test:" + uuid.NewString() + ":", TTL: time.Minute}, zap.NewNop())
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}

	type doc struct {
		Members []string `json:"members"`
	}
	c.Set(ctx, "roster:ward5", doc{Members: []string{"A", "B"}})

	var got doc
	if !c.Get(ctx, "roster:ward5", &got) {
		t.Fatal("expected cache hit")
	}
	if len(got.Members) != 2 || got.Members[1] != "B" {
		t.Errorf("got %+v", got)
	}

	c.Delete(ctx, "roster:ward5")
	if c.Get(ctx, "roster:ward5", &got) {
		t.Error("expected miss after Delete")
	}
}
