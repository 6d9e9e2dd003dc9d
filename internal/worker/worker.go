package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahulgarg55/casino-games-backend/internal/metrics"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

type Options struct {
	Stream       string        // default: "stream:ledger"
	Group        string        // default: "ledger_stats_cg"
	Block        time.Duration // default: 5s
	Batch        int64         // default: 100
	MinIdle      time.Duration // default: 30s
	TrimAfterAck bool          // optional: XDEL after ack
}

// LedgerStreamWorker consumes committed ledger entries and folds completed ones
// into the per-day stats counters.
type LedgerStreamWorker struct {
	rdb   redis.UniversalClient
	stats *store.RedisLedgerStats
	opt   Options
}

func NewLedgerStreamWorker(rdb redis.UniversalClient, stats *store.RedisLedgerStats, opt *Options) *LedgerStreamWorker {
	o := Options{
		Stream:  store.StreamLedger,
		Group:   "ledger_stats_cg",
		Block:   5 * time.Second,
		Batch:   100,
		MinIdle: 30 * time.Second,
	}
	if opt != nil {
		if opt.Stream != "" {
			o.Stream = opt.Stream
		}
		if opt.Group != "" {
			o.Group = opt.Group
		}
		if opt.Block != 0 {
			o.Block = opt.Block
		}
		if opt.Batch != 0 {
			o.Batch = opt.Batch
		}
		if opt.MinIdle != 0 {
			o.MinIdle = opt.MinIdle
		}
		o.TrimAfterAck = opt.TrimAfterAck
	}
	return &LedgerStreamWorker{rdb: rdb, stats: stats, opt: o}
}

func (w *LedgerStreamWorker) ensureGroup(ctx context.Context) {
	// "0" so entries published before the first worker started are still counted
	err := w.rdb.XGroupCreateMkStream(ctx, w.opt.Stream, w.opt.Group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		logger.Errorf("❌ XGroupCreateMkStream error: %v", err)
	} else if err == nil {
		logger.Infof("✅ Created group %q on %s", w.opt.Group, w.opt.Stream)
	}
}

func (w *LedgerStreamWorker) reclaimPending(ctx context.Context, consumer string) {
	start := "0-0"
	for {
		msgs, next, err := w.rdb.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   w.opt.Stream,
			Group:    w.opt.Group,
			Consumer: consumer,
			MinIdle:  w.opt.MinIdle,
			Start:    start,
			Count:    w.opt.Batch,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				logger.Errorf("❌ XAutoClaim error: %v", err)
			}
			return
		}
		for _, m := range msgs {
			w.handleMessage(ctx, consumer, m)
		}
		if next == "0-0" || len(msgs) == 0 {
			return
		}
		start = next
	}
}

func (w *LedgerStreamWorker) handleMessage(ctx context.Context, consumer string, m redis.XMessage) {
	ev, err := parseEvent(m.Values)
	if err != nil {
		// a malformed entry never becomes valid; drop it instead of retrying forever
		logger.Errorf("❌ worker parse error (msg=%s): %v", m.ID, err)
		metrics.LedgerEventsProcessed.WithLabelValues(metrics.ResultFailed).Inc()
		w.ack(ctx, m.ID)
		return
	}

	if ev.Status != model.StatusCompleted {
		w.ack(ctx, m.ID)
		return
	}

	applied, err := w.stats.Apply(ctx, ev)
	if err != nil {
		logger.Errorf("❌ stats apply error (tx=%s msg=%s): %v", ev.TxID, m.ID, err)
		metrics.LedgerEventsProcessed.WithLabelValues(metrics.ResultFailed).Inc()
		return // no ack -> retry later
	}

	w.ack(ctx, m.ID)
	if applied {
		metrics.LedgerEventsProcessed.WithLabelValues(metrics.ResultOK).Inc()
	} else {
		metrics.LedgerEventsProcessed.WithLabelValues(metrics.ResultReplayed).Inc()
	}
	logger.Debugf("handled ledger event %s (%s %s) for consumer %s", m.ID, ev.Type, ev.Amount, consumer)
}

func (w *LedgerStreamWorker) ack(ctx context.Context, id string) {
	if err := w.rdb.XAck(ctx, w.opt.Stream, w.opt.Group, id).Err(); err != nil {
		logger.Errorf("❌ XAck error (msg=%s): %v", id, err)
	}
	if w.opt.TrimAfterAck {
		_ = w.rdb.XDel(ctx, w.opt.Stream, id).Err()
	}
}

func parseEvent(f map[string]interface{}) (store.LedgerEvent, error) {
	txID, _ := getStr(f, "tx_id")
	if txID == "" {
		return store.LedgerEvent{}, errors.New("missing tx_id")
	}
	playerStr, _ := getStr(f, "player_id")
	pid, err := strconv.ParseInt(playerStr, 10, 64)
	if err != nil {
		return store.LedgerEvent{}, fmt.Errorf("player_id %q: %w", playerStr, err)
	}
	tsStr, _ := getStr(f, "ts")
	ms, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return store.LedgerEvent{}, fmt.Errorf("ts %q: %w", tsStr, err)
	}

	txType, _ := getStr(f, "type")
	amount, _ := getStr(f, "amount")
	currency, _ := getStr(f, "currency")
	status, _ := getStr(f, "status")

	return store.LedgerEvent{
		TxID:     txID,
		PlayerID: pid,
		Type:     model.TransactionType(txType),
		Amount:   amount,
		Currency: currency,
		Status:   model.TransactionStatus(status),
		At:       time.UnixMilli(ms).UTC(),
	}, nil
}

func getStr(m map[string]interface{}, key string) (string, bool) {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case string:
			return t, true
		case []byte:
			return string(t), true
		}
	}
	return "", false
}

func (w *LedgerStreamWorker) Run(ctx context.Context, consumerName string) {
	w.ensureGroup(ctx)
	w.reclaimPending(ctx, consumerName)

	backoff := 200 * time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		res, err := w.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    w.opt.Group,
			Consumer: consumerName,
			Streams:  []string{w.opt.Stream, ">"},
			Count:    w.opt.Batch,
			Block:    w.opt.Block,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				logger.Errorf("❌ XReadGroup error: %v", err)
				time.Sleep(backoff)
				if backoff < 5*time.Second {
					backoff *= 2
				}
			}
			continue
		}
		backoff = 200 * time.Millisecond
		for _, strm := range res {
			for _, msg := range strm.Messages {
				w.handleMessage(ctx, consumerName, msg)
			}
		}
	}
}

func ConsumerName(instance string, i int) string {
	if instance == "" {
		instance = "app"
	}
	return fmt.Sprintf("%s-%d", instance, i)
}
