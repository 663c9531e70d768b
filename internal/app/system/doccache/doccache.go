// Package doccache is an optional Redis read-through cache for small,
// read-mostly documents (rosters and shift catalogs).
//
// A nil *Cache is valid and behaves as an always-missing cache, so stores can
// hold one unconditionally.
package doccache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache stores JSON-encoded values under a key prefix.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// Options configures New.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// New connects to Redis. It returns nil (no cache) when opts.Addr is empty.
func New(opts Options, logger *zap.Logger) *Cache {
	if opts.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.Prefix, opts.TTL, logger)
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl, log: logger}
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get decodes the cached value for k into dest. It reports false on a miss,
// on a nil cache, and on any Redis or decode error (errors are logged, not
// returned, since the caller always has the store to fall back on).
func (c *Cache) Get(ctx context.Context, k string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("doccache get failed", zap.String("key", k), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("doccache decode failed", zap.String("key", k), zap.Error(err))
		return false
	}
	return true
}

// Set stores v under k with the cache TTL.
func (c *Cache) Set(ctx context.Context, k string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("doccache encode failed", zap.String("key", k), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(k), raw, c.ttl).Err(); err != nil {
		c.log.Warn("doccache set failed", zap.String("key", k), zap.Error(err))
	}
}

// Delete drops k. Writers call it after updating the backing store.
func (c *Cache) Delete(ctx context.Context, k string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(k)).Err(); err != nil {
		c.log.Warn("doccache delete failed", zap.String("key", k), zap.Error(err))
	}
}

// Ping checks connectivity. A nil cache is always healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Enabled reports whether a Redis backend is configured.
func (c *Cache) Enabled() bool {
	return c != nil
}

// Close releases the Redis connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
