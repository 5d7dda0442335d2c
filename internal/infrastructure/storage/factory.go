package storage

import (
	"context"
	"fmt"

	carouselapp "github.com/storefront/backend/internal/application/carousel"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the image store selected by cfg.Driver. For the s3 driver the
// bucket is created when missing.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (carouselapp.ImageStore, error) {
	switch cfg.Driver {
	case "s3":
		store, err := NewS3ImageStore(ctx, cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case "local", "":
		return NewLocalImageStore(cfg.LocalDir, cfg.LocalURLPath, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
