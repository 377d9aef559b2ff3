package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
)

// NewImageCache creates the image cache backend selected by configuration.
// The "redis" backend requires a reachable Redis instance; the "memory"
// backend is process-local and suitable for single-instance deployments.
func NewImageCache(cfg *config.Config, logger *zap.Logger) (ImageCache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := NewRedisImageCache(RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis image cache: %w", err)
		}
		logger.Info("using Redis image cache")
		return store, nil
	case "memory":
		logger.Info("using in-memory image cache")
		return NewInMemoryImageCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
