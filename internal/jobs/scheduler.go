// Package jobs runs the periodic maintenance tasks of the wallet service.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/metrics"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	feeusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/usecase"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

const (
	specFeeRefresh = "* * * * *"
	specStaleSweep = "*/5 * * * *"
	jobTimeout     = 30 * time.Second
)

type Scheduler struct {
	cron       *cron.Cron
	loader     *feeusecase.ConfigLoader
	ledger     *repository.TransactionRepository
	staleAfter time.Duration
	clock      func() time.Time
}

func NewScheduler(loader *feeusecase.ConfigLoader, ledger *repository.TransactionRepository, staleAfter time.Duration) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		loader:     loader,
		ledger:     ledger,
		staleAfter: staleAfter,
		clock:      time.Now,
	}
}

// Start registers the jobs and starts the cron runner in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(specFeeRefresh, func() { s.run("fee config refresh", s.RefreshFeeConfig) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(specStaleSweep, func() { s.run("stale withdrawal sweep", s.SweepStaleWithdrawals) }); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("✅ Scheduler started")
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logger.Warn("⚠️ Scheduler stop timed out")
	}
}

func (s *Scheduler) run(name string, job func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := job(ctx); err != nil {
		logger.Errorf("❌ job %s: %v", name, err)
	}
}

// RefreshFeeConfig keeps the cached fee configuration warm.
func (s *Scheduler) RefreshFeeConfig(ctx context.Context) error {
	_, err := s.loader.Refresh(ctx)
	return err
}

// SweepStaleWithdrawals reports withdrawals stuck in pending. They are not
// resolved automatically: the payout may still settle at the provider.
func (s *Scheduler) SweepStaleWithdrawals(ctx context.Context) error {
	cutoff := s.clock().Add(-s.staleAfter)
	stale, err := s.ledger.ListStalePending(ctx, model.TransactionWithdrawal, cutoff)
	if err != nil {
		return err
	}

	metrics.StalePendingWithdrawals.Set(float64(len(stale)))
	for _, w := range stale {
		payload := map[string]any{"transaction_id": w.ID, "player_id": w.PlayerID, "amount": w.Amount.String(), "created_at": w.CreatedAt}
		logger.WriteLogToFile("review", "jobs.SweepStaleWithdrawals", payload, nil)
		logger.Warnf("⚠️ withdrawal %s pending since %s", w.ID, w.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
