// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Shutdown flushes the stores, writes the metrics textfile when configured
// and closes the slot backend.
func Shutdown(ctx context.Context, deps *Deps) error {
	if deps == nil {
		return nil
	}
	logger := deps.Log
	var errs []error

	if deps.Content != nil {
		if err := deps.Content.Dispose(ctx); err != nil {
			logger.Error("flush content store", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if deps.Directory != nil {
		if err := deps.Directory.Dispose(ctx); err != nil {
			logger.Error("flush directory store", zap.Error(err))
			errs = append(errs, err)
		}
	}

	if path := deps.Config.MetricsTextfile; path != "" {
		if err := deps.Metrics.WriteTextfile(path); err != nil {
			logger.Error("write metrics textfile", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
		} else {
			logger.Debug("wrote metrics textfile", zap.String("path", path))
		}
	}

	if deps.Slots != nil {
		logger.Debug("closing slot store")
		if err := deps.Slots.Close(); err != nil {
			logger.Error("close slot store", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
