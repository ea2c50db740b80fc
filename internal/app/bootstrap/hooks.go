// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/tujitume/internal/app/system/timeouts"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Run drives the lifecycle for one command: load and validate config,
// build the logger, connect slots, start services, call fn, shut down.
// Shutdown runs even when fn fails.
func Run(ctx context.Context, flags *pflag.FlagSet, fn func(ctx context.Context, deps *Deps) error) (err error) {
	cfg, err := LoadConfig(flags, nil)
	if err != nil {
		return err
	}
	logger, err := NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := ValidateConfig(cfg, logger); err != nil {
		return err
	}

	st, err := ConnectSlots(ctx, cfg, logger)
	if err != nil {
		return err
	}
	deps, err := Startup(ctx, cfg, st, logger)
	if err != nil {
		_ = st.Close()
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Bulk())
		defer cancel()
		if serr := Shutdown(sctx, deps); serr != nil {
			err = errors.Join(err, serr)
		}
	}()

	logger.Debug("services started", zap.String("slot_backend", cfg.SlotBackend))
	return fn(ctx, deps)
}
