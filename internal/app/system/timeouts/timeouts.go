// Package timeouts provides the timeout tiers used around store calls.
//
//   - Ping: health checks
//   - Read: loading roster, catalog, schedule and assignment documents
//   - Write: saving a schedule cell or a whole duty sheet
//
// Values can be changed once at startup with Configure.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing  = 2 * time.Second
	DefaultRead  = 5 * time.Second
	DefaultWrite = 10 * time.Second
)

var (
	mu    sync.RWMutex
	ping  = DefaultPing
	read  = DefaultRead
	write = DefaultWrite
)

func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

func Read() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return read
}

func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping  time.Duration
	Read  time.Duration
	Write time.Duration
}

// Configure applies non-zero values from cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Read > 0 {
		read = cfg.Read
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
}

// Reset restores the defaults. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, read, write = DefaultPing, DefaultRead, DefaultWrite
}

// WithTimeout wraps context.WithTimeout and logs a warning from the cancel
// func when the deadline was what ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "load schedule")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}

// Detached returns a context for writes that must run to completion even if
// the request that issued them goes away. It keeps parent's values but not
// its cancellation, and is bounded by timeout.
func Detached(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	return WithTimeout(context.WithoutCancel(parent), timeout, log, operation)
}
