package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	feestore "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/store"
	feeusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/usecase"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/internal/testutil"
)

type fixture struct {
	db      *gorm.DB
	uc      *SettlementUsecase
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	_, rdb := testutil.NewTestRedis(t)

	players := repository.NewPlayerRepository(db, db)
	ledger := repository.NewTransactionRepository(db, db)
	loader := feeusecase.NewConfigLoader(
		repository.NewFeeConfigRepository(db, db),
		feestore.NewRedisConfigCache(rdb, time.Minute),
	)
	uc := NewSettlementUsecase(repository.NewTxManager(db), players, ledger, loader, store.NewRedisLedgerStream(rdb))
	return &fixture{db: db, uc: uc, players: players, ledger: ledger}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) entries(t *testing.T, playerID int64) []model.Transaction {
	t.Helper()
	rows, _, err := f.ledger.ListByPlayer(context.Background(), repository.ListFilter{PlayerID: playerID, Page: 1, Limit: 100})
	require.NoError(t, err)
	return rows
}

func TestProcessWinReferenceCase(t *testing.T) {
	f := setup(t)
	testutil.SeedFeeConfig(t, f.db, "2", "0", "1000", true)
	p := testutil.SeedPlayer(t, f.db, "10")

	out, err := f.uc.ProcessWin(context.Background(), dto.WinInput{PlayerID: p.ID, Amount: d("100"), GameRoundID: "r-1"})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.False(t, out.Replayed)
	assert.True(t, out.PlatformFee.Equal(d("2")), out.PlatformFee.String())
	assert.True(t, out.NetAmount.Equal(d("98")), out.NetAmount.String())
	assert.True(t, out.NewBalance.Equal(d("108")), out.NewBalance.String())

	rows := f.entries(t, p.ID)
	require.Len(t, rows, 2)
	byType := map[model.TransactionType]model.Transaction{}
	for _, r := range rows {
		byType[r.TransactionType] = r
	}

	win := byType[model.TransactionWin]
	assert.Equal(t, out.TransactionID, win.ID)
	assert.Equal(t, model.StatusCompleted, win.Status)
	assert.True(t, win.Amount.Equal(d("98")))
	assert.Equal(t, "100", win.Metadata["original_amount"])
	assert.Equal(t, "2", win.Metadata["platform_fee"])
	assert.Equal(t, "2", win.Metadata["fee_percentage"])
	assert.Equal(t, "r-1", win.Metadata["game_round_id"])

	assert.True(t, byType[model.TransactionPlatformFee].Amount.Equal(d("-2")))
}

func TestProcessWinReplaysSameRound(t *testing.T) {
	f := setup(t)
	testutil.SeedFeeConfig(t, f.db, "2", "0", "1000", true)
	p := testutil.SeedPlayer(t, f.db, "0")
	ctx := context.Background()
	in := dto.WinInput{PlayerID: p.ID, Amount: d("50"), GameRoundID: "r-9"}

	first, err := f.uc.ProcessWin(ctx, in)
	require.NoError(t, err)

	again, err := f.uc.ProcessWin(ctx, in)
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, first.TransactionID, again.TransactionID)
	assert.True(t, again.NewBalance.Equal(d("49")))
	assert.True(t, again.PlatformFee.Equal(d("1")))

	bal, err := f.players.GetBalance(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("49")), "replay must not credit twice")
	assert.Len(t, f.entries(t, p.ID), 2)

	_, err = f.uc.ProcessWin(ctx, dto.WinInput{PlayerID: p.ID, Amount: d("75"), GameRoundID: "r-9"})
	assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)
}

func TestProcessWinInactiveConfigSkipsFeeEntry(t *testing.T) {
	f := setup(t)
	testutil.SeedFeeConfig(t, f.db, "10", "1", "100", false)
	p := testutil.SeedPlayer(t, f.db, "0")

	out, err := f.uc.ProcessWin(context.Background(), dto.WinInput{PlayerID: p.ID, Amount: d("40"), GameRoundID: "r-2"})
	require.NoError(t, err)
	assert.True(t, out.PlatformFee.IsZero())
	assert.True(t, out.NetAmount.Equal(d("40")))

	rows := f.entries(t, p.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, model.TransactionWin, rows[0].TransactionType)
	assert.Equal(t, "0", rows[0].Metadata["fee_percentage"])
}

func TestProcessWinErrors(t *testing.T) {
	f := setup(t)
	p := testutil.SeedPlayer(t, f.db, "5")
	ctx := context.Background()

	_, err := f.uc.ProcessWin(ctx, dto.WinInput{PlayerID: p.ID, Amount: d("10"), GameRoundID: "r-1"})
	assert.ErrorIs(t, err, errs.ErrConfigurationMissing)

	testutil.SeedFeeConfig(t, f.db, "2", "0", "1000", true)

	_, err = f.uc.ProcessWin(ctx, dto.WinInput{PlayerID: p.ID + 1000, Amount: d("10"), GameRoundID: "r-1"})
	assert.ErrorIs(t, err, errs.ErrPlayerNotFound)

	_, err = f.uc.ProcessWin(ctx, dto.WinInput{PlayerID: p.ID, Amount: d("0"), GameRoundID: "r-1"})
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	bal, err := f.players.GetBalance(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("5")))
	assert.Empty(t, f.entries(t, p.ID))
}

func TestProcessWinRejectsAmountBeyondScale(t *testing.T) {
	f := setup(t)
	testutil.SeedFeeConfig(t, f.db, "50", "0", "1000", true)
	p := testutil.SeedPlayer(t, f.db, "5")
	ctx := context.Background()

	for i, gross := range []string{"1.000000001", "0.000000004"} {
		out, err := f.uc.ProcessWin(ctx, dto.WinInput{PlayerID: p.ID, Amount: d(gross), GameRoundID: fmt.Sprintf("s-%d", i)})
		assert.ErrorIs(t, err, errs.ErrInvalidAmount, gross)
		assert.Nil(t, out)
	}

	bal, err := f.players.GetBalance(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("5")), bal.String())
	assert.Empty(t, f.entries(t, p.ID))
}

func TestConcurrentWinsKeepEveryCredit(t *testing.T) {
	f := setup(t)
	testutil.SeedFeeConfig(t, f.db, "2", "0", "1000", true)
	p := testutil.SeedPlayer(t, f.db, "0")

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.uc.ProcessWin(context.Background(), dto.WinInput{
				PlayerID: p.ID, Amount: d("100"), GameRoundID: fmt.Sprintf("round-%d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	bal, err := f.players.GetBalance(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("1960")), bal.String())
}

func TestConcurrentDuplicateRoundCreditsOnce(t *testing.T) {
	f := setup(t)
	testutil.SeedFeeConfig(t, f.db, "0", "0", "0", true)
	p := testutil.SeedPlayer(t, f.db, "0")

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.ProcessWin(context.Background(), dto.WinInput{PlayerID: p.ID, Amount: d("10"), GameRoundID: "same"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	bal, err := f.players.GetBalance(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("10")), bal.String())
}

func TestPlaceWager(t *testing.T) {
	f := setup(t)
	p := testutil.SeedPlayer(t, f.db, "30")
	ctx := context.Background()

	out, err := f.uc.PlaceWager(ctx, dto.WagerInput{PlayerID: p.ID, Amount: d("12.5"), GameRoundID: "w-1"})
	require.NoError(t, err)
	assert.True(t, out.NewBalance.Equal(d("17.5")), out.NewBalance.String())

	again, err := f.uc.PlaceWager(ctx, dto.WagerInput{PlayerID: p.ID, Amount: d("12.5"), GameRoundID: "w-1"})
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, out.TransactionID, again.TransactionID)

	_, err = f.uc.PlaceWager(ctx, dto.WagerInput{PlayerID: p.ID, Amount: d("100"), GameRoundID: "w-2"})
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

	_, err = f.uc.PlaceWager(ctx, dto.WagerInput{PlayerID: p.ID, Amount: d("1.000000001"), GameRoundID: "w-3"})
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	bal, err := f.players.GetBalance(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("17.5")))

	rows := f.entries(t, p.ID)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.Equal(d("-12.5")))
}
