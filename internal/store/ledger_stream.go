package store

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

//go:embed lua/publish_ledger.lua
var luaPublishLedger string

const (
	StreamLedger      = "stream:ledger"
	streamMaxLen      = 100000
	publishedDedupTTL = 24 * time.Hour
)

// LedgerEvent is the stream representation of a committed ledger entry.
type LedgerEvent struct {
	TxID     string
	PlayerID int64
	Type     model.TransactionType
	Amount   string
	Currency string
	Status   model.TransactionStatus
	At       time.Time
}

func EventFromTransaction(t *model.Transaction) LedgerEvent {
	return LedgerEvent{
		TxID:     t.ID,
		PlayerID: t.PlayerID,
		Type:     t.TransactionType,
		Amount:   t.Amount.String(),
		Currency: string(t.Currency),
		Status:   t.Status,
		At:       t.CreatedAt,
	}
}

// RedisLedgerStream appends ledger events to a Redis stream, once per entry.
type RedisLedgerStream struct {
	rdb        redis.UniversalClient
	stream     string
	scrPublish *redis.Script
}

func NewRedisLedgerStream(rdb redis.UniversalClient) *RedisLedgerStream {
	s := &RedisLedgerStream{
		rdb:        rdb,
		stream:     StreamLedger,
		scrPublish: redis.NewScript(luaPublishLedger),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.scrPublish.Load(ctx, rdb).Err() // Run() falls back to EVAL
	}()

	return s
}

func keyPublished(txID string) string { return fmt.Sprintf("ledger:published:{%s}", txID) }

// Publish returns false when the entry was already on the stream.
func (s *RedisLedgerStream) Publish(ctx context.Context, ev LedgerEvent) (bool, error) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	keys := []string{keyPublished(ev.TxID), s.stream}
	args := []any{
		ev.TxID,
		strconv.FormatInt(ev.PlayerID, 10),
		string(ev.Type),
		ev.Amount,
		ev.Currency,
		string(ev.Status),
		strconv.FormatInt(ev.At.UnixMilli(), 10),
		int64(publishedDedupTTL / time.Second),
		streamMaxLen,
	}

	raw, err := s.scrPublish.Run(ctx, s.rdb, keys, args...).Slice()
	if err != nil {
		return false, err
	}
	code, _ := raw[0].(int64)
	return code == 1, nil
}

// PublishAll publishes each entry and returns the first error.
func (s *RedisLedgerStream) PublishAll(ctx context.Context, entries ...*model.Transaction) error {
	var first error
	for _, e := range entries {
		if e == nil {
			continue
		}
		if _, err := s.Publish(ctx, EventFromTransaction(e)); err != nil && first == nil {
			first = err
		}
	}
	return first
}
