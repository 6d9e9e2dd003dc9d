package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/testutil"
)

func TestIdempotencyLock(t *testing.T) {
	mr, rdb := testutil.NewTestRedis(t)
	lock := NewIdempotencyLock(rdb, time.Minute)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, "withdrawal:1", "key-1", "owner-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lock.Acquire(ctx, "withdrawal:1", "key-1", "owner-b")
	require.NoError(t, err)
	assert.False(t, ok, "second owner must not acquire a held key")

	// a stranger cannot release it
	require.NoError(t, lock.Release(ctx, "withdrawal:1", "key-1", "owner-b"))
	assert.True(t, mr.Exists(idemKey("withdrawal:1", "key-1")))

	require.NoError(t, lock.Release(ctx, "withdrawal:1", "key-1", "owner-a"))
	ok, err = lock.Acquire(ctx, "withdrawal:1", "key-1", "owner-b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyLockExpires(t *testing.T) {
	mr, rdb := testutil.NewTestRedis(t)
	lock := NewIdempotencyLock(rdb, time.Second)
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, "s", "k", "a")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err = lock.Acquire(ctx, "s", "k", "b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLedgerStreamPublishesOnce(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	stream := NewRedisLedgerStream(rdb)
	ctx := context.Background()

	entry := &model.Transaction{
		ID: "tx-1", PlayerID: 7, Amount: decimal.NewFromInt(98), Currency: model.CurrencyUSD,
		TransactionType: model.TransactionWin, Status: model.StatusCompleted, CreatedAt: time.Now(),
	}

	added, err := stream.Publish(ctx, EventFromTransaction(entry))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = stream.Publish(ctx, EventFromTransaction(entry))
	require.NoError(t, err)
	assert.False(t, added)

	msgs, err := rdb.XRange(ctx, StreamLedger, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "tx-1", msgs[0].Values["tx_id"])
	assert.Equal(t, "win", msgs[0].Values["type"])
	assert.Equal(t, "98", msgs[0].Values["amount"])
	assert.Equal(t, "7", msgs[0].Values["player_id"])
}

func TestLedgerStatsCountOnce(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	stats := NewRedisLedgerStats(rdb)
	ctx := context.Background()
	day := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	for _, ev := range []LedgerEvent{
		{TxID: "a", Type: model.TransactionWin, Amount: "98", At: day},
		{TxID: "b", Type: model.TransactionWin, Amount: "49.5", At: day},
		{TxID: "c", Type: model.TransactionPlatformFee, Amount: "-2", At: day},
	} {
		counted, err := stats.Apply(ctx, ev)
		require.NoError(t, err)
		assert.True(t, counted)
	}

	counted, err := stats.Apply(ctx, LedgerEvent{TxID: "a", Type: model.TransactionWin, Amount: "98", At: day})
	require.NoError(t, err)
	assert.False(t, counted, "redelivered event must not be counted twice")

	got, err := stats.Day(ctx, day)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got["win"].Count)
	assert.True(t, got["win"].Sum.Equal(decimal.RequireFromString("147.5")), got["win"].Sum.String())
	assert.EqualValues(t, 1, got["platform_fee"].Count)

	_, err = stats.Apply(ctx, LedgerEvent{TxID: "d", Type: model.TransactionWin, Amount: "abc", At: day})
	assert.Error(t, err)
}
