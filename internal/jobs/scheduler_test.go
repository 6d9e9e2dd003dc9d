package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/metrics"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	feestore "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/store"
	feeusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/usecase"
	tu "github.com/rahulgarg55/casino-games-backend/internal/testutil"
)

func TestSweepStaleWithdrawals(t *testing.T) {
	db := tu.NewTestDB(t)
	_, rdb := tu.NewTestRedis(t)
	ctx := context.Background()
	p := tu.SeedPlayer(t, db, "0")

	ledger := repository.NewTransactionRepository(db, db)
	nowAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	for _, age := range []time.Duration{2 * time.Hour, time.Hour, 5 * time.Minute} {
		require.NoError(t, ledger.Append(ctx, &model.Transaction{
			PlayerID: p.ID, Amount: decimal.NewFromInt(-10), Currency: model.CurrencyUSD,
			TransactionType: model.TransactionWithdrawal, Status: model.StatusPending,
			CreatedAt: nowAt.Add(-age),
		}))
	}

	loader := feeusecase.NewConfigLoader(repository.NewFeeConfigRepository(db, db), feestore.NewRedisConfigCache(rdb, time.Minute))
	s := NewScheduler(loader, ledger, 30*time.Minute)
	s.clock = func() time.Time { return nowAt }

	require.NoError(t, s.SweepStaleWithdrawals(ctx))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.StalePendingWithdrawals))
}

func TestRefreshFeeConfigWarmsCache(t *testing.T) {
	db := tu.NewTestDB(t)
	mr, rdb := tu.NewTestRedis(t)
	tu.SeedFeeConfig(t, db, "2", "0.5", "100", true)

	loader := feeusecase.NewConfigLoader(repository.NewFeeConfigRepository(db, db), feestore.NewRedisConfigCache(rdb, time.Minute))
	s := NewScheduler(loader, repository.NewTransactionRepository(db, db), time.Hour)

	require.NoError(t, s.RefreshFeeConfig(context.Background()))
	assert.True(t, mr.Exists("fee:config:current"))
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(nil, nil, time.Hour)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
