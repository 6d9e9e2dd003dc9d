package usecase

import (
	"context"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"

	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/dashboard/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

type DashboardUsecase struct {
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	stats   *store.RedisLedgerStats
	clock   func() time.Time
}

func NewDashboardUsecase(players *repository.PlayerRepository, ledger *repository.TransactionRepository, stats *store.RedisLedgerStats) *DashboardUsecase {
	return &DashboardUsecase{players: players, ledger: ledger, stats: stats, clock: time.Now}
}

// Summary reports ledger totals from the database plus the live stream counters for today.
func (u *DashboardUsecase) Summary(ctx context.Context) (*dto.DashboardOutput, error) {
	at := now.With(u.clock().UTC())
	from, to := at.BeginningOfDay(), at.EndOfDay()

	active, err := u.players.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := u.ledger.CountByStatus(ctx, model.TransactionWithdrawal, model.StatusPending)
	if err != nil {
		return nil, err
	}

	today, err := u.ledger.SumByType(ctx, from, to)
	if err != nil {
		return nil, err
	}
	allTime, err := u.ledger.SumByType(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardOutput{
		ActivePlayers:      active,
		PendingWithdrawals: pending,
		Today:              dto.PeriodSummary{From: &from, To: &to, ByType: today, PlatformFees: platformFees(today)},
		AllTime:            dto.PeriodSummary{ByType: allTime, PlatformFees: platformFees(allTime)},
		GeneratedAt:        at.Time,
	}

	if u.stats != nil {
		live, err := u.stats.Day(ctx, from)
		if err != nil {
			logger.Warnf("⚠️ live ledger stats unavailable: %v", err)
		} else {
			out.Live = live
		}
	}
	return out, nil
}

// platform fee entries are negative memo amounts; report revenue as positive
func platformFees(totals []repository.TypeTotal) decimal.Decimal {
	for _, t := range totals {
		if t.TransactionType == model.TransactionPlatformFee {
			return t.Total.Abs()
		}
	}
	return decimal.Zero
}
