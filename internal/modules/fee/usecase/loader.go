package usecase

import (
	"context"

	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/fee/store"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

// ConfigLoader serves the current fee configuration through the Redis cache.
// Cache failures fall back to the database.
type ConfigLoader struct {
	repo  *repository.FeeConfigRepository
	cache *store.RedisConfigCache
}

func NewConfigLoader(repo *repository.FeeConfigRepository, cache *store.RedisConfigCache) *ConfigLoader {
	return &ConfigLoader{repo: repo, cache: cache}
}

func (l *ConfigLoader) Current(ctx context.Context) (*model.PlatformFeeConfig, error) {
	cfg, err := l.cache.Get(ctx)
	if err != nil {
		logger.Warnf("⚠️ fee config cache read failed, using database: %v", err)
	}
	if cfg != nil {
		return cfg, nil
	}
	return l.Refresh(ctx)
}

// Refresh reloads the configuration from the database and repopulates the cache.
func (l *ConfigLoader) Refresh(ctx context.Context) (*model.PlatformFeeConfig, error) {
	cfg, err := l.repo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.cache.Set(ctx, cfg); err != nil {
		logger.Warnf("⚠️ fee config cache write failed: %v", err)
	}
	return cfg, nil
}

func (l *ConfigLoader) Invalidate(ctx context.Context) error {
	return l.cache.Delete(ctx)
}
