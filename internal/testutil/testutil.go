// Package testutil provides in-memory backing stores for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

// NewTestDB opens a private in-memory sqlite database with the ledger schema migrated.
// A single connection serialises transactions the way row locks would on postgres.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// NewTestRedis starts a miniredis server and returns a client connected to it.
func NewTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// SeedPlayer inserts an active player with the given balance.
func SeedPlayer(t *testing.T, db *gorm.DB, balance string) *model.Player {
	t.Helper()

	p := &model.Player{
		Email:        uuid.NewString() + "@example.com",
		Username:     "player",
		PasswordHash: "x",
		Role:         model.RolePlayer,
		Currency:     model.CurrencyUSD,
		Balance:      decimal.RequireFromString(balance),
		IsActive:     true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// SeedFeeConfig inserts a fee configuration row which becomes the current one.
func SeedFeeConfig(t *testing.T, db *gorm.DB, pct, min, max string, active bool) *model.PlatformFeeConfig {
	t.Helper()

	c := &model.PlatformFeeConfig{
		FeePercentage: decimal.RequireFromString(pct),
		IsActive:      active,
		MinFeeAmount:  decimal.RequireFromString(min),
		MaxFeeAmount:  decimal.RequireFromString(max),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
