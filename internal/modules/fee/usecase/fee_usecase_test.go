package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/fee/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/fee/store"
	"github.com/rahulgarg55/casino-games-backend/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }

func TestLoaderCachesCurrentConfig(t *testing.T) {
	db := testutil.NewTestDB(t)
	mr, rdb := testutil.NewTestRedis(t)
	testutil.SeedFeeConfig(t, db, "2", "0.5", "100", true)
	ctx := context.Background()

	loader := NewConfigLoader(repository.NewFeeConfigRepository(db, db), store.NewRedisConfigCache(rdb, time.Minute))

	cfg, err := loader.Current(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.FeePercentage.Equal(d("2")))
	assert.True(t, mr.Exists("fee:config:current"))

	// a row written behind the loader's back stays invisible until the cache drops
	testutil.SeedFeeConfig(t, db, "4", "0", "100", true)
	cfg, err = loader.Current(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.FeePercentage.Equal(d("2")))

	require.NoError(t, loader.Invalidate(ctx))
	cfg, err = loader.Current(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.FeePercentage.Equal(d("4")))
}

func TestLoaderFallsBackToDatabase(t *testing.T) {
	db := testutil.NewTestDB(t)
	mr, rdb := testutil.NewTestRedis(t)
	testutil.SeedFeeConfig(t, db, "2", "0.5", "100", true)
	mr.Close()

	loader := NewConfigLoader(repository.NewFeeConfigRepository(db, db), store.NewRedisConfigCache(rdb, time.Minute))
	cfg, err := loader.Current(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.MinFeeAmount.Equal(d("0.5")))
}

func TestLoaderWithoutConfig(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, rdb := testutil.NewTestRedis(t)

	loader := NewConfigLoader(repository.NewFeeConfigRepository(db, db), store.NewRedisConfigCache(rdb, time.Minute))
	_, err := loader.Current(context.Background())
	assert.ErrorIs(t, err, errs.ErrConfigurationMissing)
}

func TestUpdateAppendsAndInvalidates(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, rdb := testutil.NewTestRedis(t)
	testutil.SeedFeeConfig(t, db, "2", "0.5", "100", true)
	ctx := context.Background()

	repo := repository.NewFeeConfigRepository(db, db)
	loader := NewConfigLoader(repo, store.NewRedisConfigCache(rdb, time.Minute))
	uc := NewFeeUsecase(repo, loader)

	_, err := uc.Current(ctx)
	require.NoError(t, err)

	cfg, err := uc.Update(ctx, 7, dto.UpdateFeeConfigInput{
		FeePercentage: d("3.5"),
		IsActive:      boolPtr(true),
		MinFeeAmount:  d("1"),
		MaxFeeAmount:  d("50"),
	})
	require.NoError(t, err)
	require.NotNil(t, cfg.UpdatedBy)
	assert.EqualValues(t, 7, *cfg.UpdatedBy)

	cur, err := uc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, cur.ID)

	rows, total, err := uc.History(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, cfg.ID, rows[0].ID)
}

func TestUpdateRejectsInvalidConfig(t *testing.T) {
	cases := map[string]dto.UpdateFeeConfigInput{
		"percentage above 100": {FeePercentage: d("101"), MaxFeeAmount: d("1")},
		"negative percentage":  {FeePercentage: d("-1"), MaxFeeAmount: d("1")},
		"three decimals":       {FeePercentage: d("1.255"), MaxFeeAmount: d("1")},
		"negative minimum":     {FeePercentage: d("1"), MinFeeAmount: d("-1"), MaxFeeAmount: d("1")},
		"max below min":        {FeePercentage: d("1"), MinFeeAmount: d("5"), MaxFeeAmount: d("1")},
		"zero max with fee":    {FeePercentage: d("1"), MaxFeeAmount: decimal.Zero},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			in.IsActive = boolPtr(true)
			assert.ErrorIs(t, validateConfig(in), errs.ErrInvalidFeeConfig)
		})
	}
	assert.NoError(t, validateConfig(dto.UpdateFeeConfigInput{FeePercentage: d("0"), IsActive: boolPtr(false)}))
}
