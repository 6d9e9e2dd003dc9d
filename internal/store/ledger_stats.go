package store

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

//go:embed lua/apply_stats.lua
var luaApplyStats string

const statsTTL = 8 * 24 * time.Hour

type TypeStat struct {
	Count int64           `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
}

// RedisLedgerStats keeps per-day counters of ledger activity keyed by transaction type.
type RedisLedgerStats struct {
	rdb      redis.UniversalClient
	scrApply *redis.Script
}

func NewRedisLedgerStats(rdb redis.UniversalClient) *RedisLedgerStats {
	return &RedisLedgerStats{rdb: rdb, scrApply: redis.NewScript(luaApplyStats)}
}

func keyStats(day time.Time) string { return fmt.Sprintf("stats:ledger:%s", day.UTC().Format("2006-01-02")) }

// Apply counts ev once; redelivered events return false.
func (s *RedisLedgerStats) Apply(ctx context.Context, ev LedgerEvent) (bool, error) {
	if _, err := decimal.NewFromString(ev.Amount); err != nil {
		return false, fmt.Errorf("amount %q: %w", ev.Amount, err)
	}
	key := keyStats(ev.At)
	keys := []string{key, key + ":seen"}
	args := []any{ev.TxID, string(ev.Type), ev.Amount, int64(statsTTL / time.Second)}

	res, err := s.scrApply.Run(ctx, s.rdb, keys, args...).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Day returns the counters for the given UTC day.
func (s *RedisLedgerStats) Day(ctx context.Context, day time.Time) (map[string]TypeStat, error) {
	raw, err := s.rdb.HGetAll(ctx, keyStats(day)).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]TypeStat)
	for field, val := range raw {
		txType, metric, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		st := out[txType]
		switch metric {
		case "count":
			st.Count, _ = strconv.ParseInt(val, 10, 64)
		case "sum":
			st.Sum, _ = decimal.NewFromString(val)
		}
		out[txType] = st
	}
	return out, nil
}
