package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed lua/acquire.lua
var luaAcquire string

//go:embed lua/release.lua
var luaRelease string

// IdempotencyLock guards a client-supplied idempotency key so that only one
// request carrying it runs at a time.
type IdempotencyLock struct {
	rdb        redis.UniversalClient
	ttl        time.Duration
	scrAcquire *redis.Script
	scrRelease *redis.Script
}

func NewIdempotencyLock(rdb redis.UniversalClient, ttl time.Duration) *IdempotencyLock {
	l := &IdempotencyLock{
		rdb:        rdb,
		ttl:        ttl,
		scrAcquire: redis.NewScript(luaAcquire),
		scrRelease: redis.NewScript(luaRelease),
	}
	// preload scripts (best-effort)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = l.scrAcquire.Load(ctx, rdb).Err()
		_ = l.scrRelease.Load(ctx, rdb).Err()
	}()
	return l
}

func idemKey(scope, key string) string { return fmt.Sprintf("idem:{%s}:%s", scope, key) }

// Acquire returns false when another owner holds the key.
func (l *IdempotencyLock) Acquire(ctx context.Context, scope, key, owner string) (bool, error) {
	res, err := l.scrAcquire.Run(ctx, l.rdb, []string{idemKey(scope, key)}, owner, l.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Release deletes the key only if owner still holds it.
func (l *IdempotencyLock) Release(ctx context.Context, scope, key, owner string) error {
	return l.scrRelease.Run(ctx, l.rdb, []string{idemKey(scope, key)}, owner).Err()
}
