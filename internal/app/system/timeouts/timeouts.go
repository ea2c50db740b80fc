// Package timeouts holds the context deadlines used around slot, media and
// mail I/O.
//
// Guidelines for choosing a timeout:
//   - Ping: backend connectivity checks at startup
//   - Slot: a single slot read or write (a snapshot save, a session write)
//   - Upload: a media object upload
//   - Bulk: import/export of the full content snapshot
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used until Configure is called.
const (
	DefaultPing   = 2 * time.Second
	DefaultSlot   = 5 * time.Second
	DefaultUpload = 30 * time.Second
	DefaultBulk   = 60 * time.Second
)

var mu sync.RWMutex

var current = Config{
	Ping:   DefaultPing,
	Slot:   DefaultSlot,
	Upload: DefaultUpload,
	Bulk:   DefaultBulk,
}

// Config holds timeout values. Zero values are ignored by Configure.
type Config struct {
	Ping   time.Duration
	Slot   time.Duration
	Upload time.Duration
	Bulk   time.Duration
}

func Ping() time.Duration   { return get().Ping }
func Slot() time.Duration   { return get().Slot }
func Upload() time.Duration { return get().Upload }
func Bulk() time.Duration   { return get().Bulk }

func get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Configure overrides the non-zero values in cfg. Call it once at startup.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		current.Ping = cfg.Ping
	}
	if cfg.Slot > 0 {
		current.Slot = cfg.Slot
	}
	if cfg.Upload > 0 {
		current.Upload = cfg.Upload
	}
	if cfg.Bulk > 0 {
		current.Bulk = cfg.Bulk
	}
}

// Reset restores the defaults. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = Config{Ping: DefaultPing, Slot: DefaultSlot, Upload: DefaultUpload, Bulk: DefaultBulk}
}

// Current returns the active configuration.
func Current() Config { return get() }

// WithTimeout derives a context with the given timeout. The returned cancel
// function logs a warning when the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "save content snapshot")
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
