package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riordanpawley/quadrant/internal/config"
)

// Open creates the backend selected by cfg.Driver. When the backend cannot be
// opened the returned store is Unavailable and err says why; callers may keep
// running on it.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Debug("opening storage", "driver", cfg.Driver)
		return NewMemory(nil), nil

	case config.DriverFile, "":
		logger.Debug("opening storage", "driver", config.DriverFile, "path", cfg.Path)
		f, err := NewFile(cfg.Path)
		if err != nil {
			return Unavailable{}, err
		}
		return f, nil

	case config.DriverPostgres:
		logger.Debug("opening storage", "driver", cfg.Driver)
		if cfg.TimeoutMs > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout())
			defer cancel()
		}
		pg, err := NewPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return Unavailable{}, err
		}
		return pg, nil

	default:
		return Unavailable{}, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
