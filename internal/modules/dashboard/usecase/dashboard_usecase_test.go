package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/internal/testutil"
)

func TestSummary(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, rdb := testutil.NewTestRedis(t)
	ctx := context.Background()

	p := testutil.SeedPlayer(t, db, "0")
	testutil.SeedPlayer(t, db, "0")

	ledger := repository.NewTransactionRepository(db, db)
	stats := store.NewRedisLedgerStats(rdb)

	today := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	yesterday := today.Add(-24 * time.Hour)

	entries := []*model.Transaction{
		{Amount: decimal.NewFromInt(98), TransactionType: model.TransactionWin, Status: model.StatusCompleted, CreatedAt: today},
		{Amount: decimal.NewFromInt(-2), TransactionType: model.TransactionPlatformFee, Status: model.StatusCompleted, CreatedAt: today},
		{Amount: decimal.NewFromInt(-4), TransactionType: model.TransactionPlatformFee, Status: model.StatusCompleted, CreatedAt: yesterday},
		{Amount: decimal.NewFromInt(-50), TransactionType: model.TransactionWithdrawal, Status: model.StatusPending, CreatedAt: today},
	}
	for _, e := range entries {
		e.PlayerID = p.ID
		e.Currency = model.CurrencyUSD
		require.NoError(t, ledger.Append(ctx, e))
	}
	_, err := stats.Apply(ctx, store.EventFromTransaction(entries[0]))
	require.NoError(t, err)

	uc := NewDashboardUsecase(repository.NewPlayerRepository(db, db), ledger, stats)
	uc.clock = func() time.Time { return today }

	out, err := uc.Summary(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, out.ActivePlayers)
	assert.EqualValues(t, 1, out.PendingWithdrawals)
	assert.True(t, out.Today.PlatformFees.Equal(decimal.NewFromInt(2)), out.Today.PlatformFees.String())
	assert.True(t, out.AllTime.PlatformFees.Equal(decimal.NewFromInt(6)), out.AllTime.PlatformFees.String())
	assert.Len(t, out.Today.ByType, 2)

	require.Contains(t, out.Live, string(model.TransactionWin))
	assert.EqualValues(t, 1, out.Live[string(model.TransactionWin)].Count)
	assert.True(t, out.Live[string(model.TransactionWin)].Sum.Equal(decimal.NewFromInt(98)))
}
