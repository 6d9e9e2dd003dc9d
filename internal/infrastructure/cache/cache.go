package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahulgarg55/casino-games-backend/internal/config"
)

const (
	pingTimeout         = 2 * time.Second
	defaultPoolSize     = 100
	defaultMinIdleConns = 10
)

// ConnectRedis opens the client shared by the idempotency lock, the ledger
// stream and the fee config cache. It fails when the server does not answer
// a PING.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, clientName string) (redis.UniversalClient, error) {
	opts, err := Options(cfg, clientName)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// Options maps RedisConfig onto go-redis options. Lock and stream calls are
// short, so reads and writes time out well under a second.
func Options(cfg config.RedisConfig, clientName string) (*redis.Options, error) {
	dbIndex := 0
	if cfg.DB != "" {
		n, err := strconv.Atoi(cfg.DB)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid redis db index %q", cfg.DB)
		}
		dbIndex = n
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	minIdle := cfg.MinIdleConns
	if minIdle <= 0 || minIdle > poolSize {
		minIdle = min(defaultMinIdleConns, poolSize)
	}

	return &redis.Options{
		Addr:            net.JoinHostPort(cfg.Host, cfg.Port),
		Password:        cfg.Password,
		DB:              dbIndex,
		DialTimeout:     time.Second,
		ReadTimeout:     500 * time.Millisecond,
		WriteTimeout:    500 * time.Millisecond,
		PoolSize:        poolSize,
		MinIdleConns:    minIdle,
		PoolTimeout:     time.Second,
		ConnMaxIdleTime: 2 * time.Minute,
		MaxRetries:      1,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 250 * time.Millisecond,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			if clientName == "" {
				return nil
			}
			// visible in CLIENT LIST; servers without SETNAME still connect
			_ = cn.ClientSetName(ctx, clientName).Err()
			return nil
		},
	}, nil
}
