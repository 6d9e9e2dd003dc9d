package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

const keyCurrentConfig = "fee:config:current"

// RedisConfigCache keeps the current fee configuration as a JSON string.
type RedisConfigCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisConfigCache(rdb redis.UniversalClient, ttl time.Duration) *RedisConfigCache {
	return &RedisConfigCache{rdb: rdb, ttl: ttl}
}

// Get returns nil, nil on a cache miss.
func (s *RedisConfigCache) Get(ctx context.Context) (*model.PlatformFeeConfig, error) {
	raw, err := s.rdb.Get(ctx, keyCurrentConfig).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg model.PlatformFeeConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *RedisConfigCache) Set(ctx context.Context, cfg *model.PlatformFeeConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyCurrentConfig, raw, s.ttl).Err()
}

func (s *RedisConfigCache) Delete(ctx context.Context) error {
	return s.rdb.Del(ctx, keyCurrentConfig).Err()
}
