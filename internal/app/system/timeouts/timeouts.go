// Package timeouts provides the context timeouts used around MongoDB calls.
//
// Values start at the defaults below and can be overridden once at startup
// with Configure, from the timeout_* config keys.
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and publishes
//   - Startup: index creation and variant seeding
package timeouts

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultPing    = 2 * time.Second
	DefaultShort   = 5 * time.Second
	DefaultStartup = 30 * time.Second
)

var (
	mu      sync.RWMutex
	ping    = DefaultPing
	short   = DefaultShort
	startup = DefaultStartup
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads and writes.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Startup returns the timeout for schema setup and seeding.
func Startup() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return startup
}

// WithShort derives a context bounded by Short.
func WithShort(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Short())
}

// Config holds timeout overrides. Zero values keep the current value.
type Config struct {
	Ping    time.Duration
	Short   time.Duration
	Startup time.Duration
}

// Configure applies non-zero values from cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Startup > 0 {
		startup = cfg.Startup
	}
}

// Current returns the active values, for startup logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Startup: startup}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	startup = DefaultStartup
}
