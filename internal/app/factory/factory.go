package factory

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/config"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/payout"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/jobs"
	authhandler "github.com/rahulgarg55/casino-games-backend/internal/modules/auth/handler"
	authusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/auth/usecase"
	dashhandler "github.com/rahulgarg55/casino-games-backend/internal/modules/dashboard/handler"
	dashusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/dashboard/usecase"
	feehandler "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/handler"
	feestore "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/store"
	feeusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/usecase"
	settlementhandler "github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/handler"
	wallethandler "github.com/rahulgarg55/casino-games-backend/internal/modules/wallet/handler"
	withdrawalhandler "github.com/rahulgarg55/casino-games-backend/internal/modules/withdrawal/handler"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/internal/worker"
)

// Factory holds the shared repositories and Redis stores.
type Factory struct {
	Tx           *repository.TxManager
	Players      *repository.PlayerRepository
	Ledger       *repository.TransactionRepository
	FeeConfigs   *repository.FeeConfigRepository
	Stream       *store.RedisLedgerStream
	Stats        *store.RedisLedgerStats
	FeeLoader    *feeusecase.ConfigLoader
	Idempotency  *store.IdempotencyLock
	PayoutClient payout.Payouter
}

func NewFactory(cfg *config.Config, dbWrite *gorm.DB, dbRead *gorm.DB, rdb redis.UniversalClient) *Factory {
	feeConfigs := repository.NewFeeConfigRepository(dbWrite, dbRead)
	return &Factory{
		Tx:           repository.NewTxManager(dbWrite),
		Players:      repository.NewPlayerRepository(dbWrite, dbRead),
		Ledger:       repository.NewTransactionRepository(dbWrite, dbRead),
		FeeConfigs:   feeConfigs,
		Stream:       store.NewRedisLedgerStream(rdb),
		Stats:        store.NewRedisLedgerStats(rdb),
		FeeLoader:    feeusecase.NewConfigLoader(feeConfigs, feestore.NewRedisConfigCache(rdb, cfg.Wallet.FeeCacheTTL)),
		Idempotency:  store.NewIdempotencyLock(rdb, cfg.Wallet.IdempotencyKeyTTL),
		PayoutClient: payout.NewClient(cfg.Payout),
	}
}

// Container is everything the HTTP layer and background runners need.
type Container struct {
	AuthHandler       *authhandler.AuthHandler
	WalletHandler     *wallethandler.WalletHandler
	SettlementHandler *settlementhandler.SettlementHandler
	WithdrawalHandler *withdrawalhandler.WithdrawalHandler
	FeeHandler        *feehandler.FeeHandler
	DashboardHandler  *dashhandler.DashboardHandler

	LedgerWorker *worker.LedgerStreamWorker
	Scheduler    *jobs.Scheduler

	// Checks back the readiness endpoint, keyed by dependency name.
	Checks map[string]func(context.Context) error
}

func Build(cfg *config.Config, dbWrite *gorm.DB, dbRead *gorm.DB, rdb redis.UniversalClient) *Container {
	return BuildWith(cfg, NewFactory(cfg, dbWrite, dbRead, rdb), rdb)
}

// BuildWith wires the container from an existing Factory, letting callers swap
// the payout client.
func BuildWith(cfg *config.Config, f *Factory, rdb redis.UniversalClient) *Container {
	return &Container{
		AuthHandler:       newAuthFactory(cfg, f),
		WalletHandler:     newWalletFactory(f),
		SettlementHandler: newSettlementFactory(f),
		WithdrawalHandler: newWithdrawalFactory(f),
		FeeHandler:        newFeeFactory(f),
		DashboardHandler:  newDashboardFactory(f),
		LedgerWorker:      worker.NewLedgerStreamWorker(rdb, f.Stats, nil),
		Scheduler:         jobs.NewScheduler(f.FeeLoader, f.Ledger, cfg.Wallet.WithdrawalPendingTimeout),
		Checks: map[string]func(context.Context) error{
			"postgres": f.Tx.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	}
}

func newAuthFactory(cfg *config.Config, f *Factory) *authhandler.AuthHandler {
	usecase := authusecase.NewAuthUsecase(f.Players, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	return authhandler.NewAuthHandler(usecase)
}

func newFeeFactory(f *Factory) *feehandler.FeeHandler {
	usecase := feeusecase.NewFeeUsecase(f.FeeConfigs, f.FeeLoader)
	return feehandler.NewFeeHandler(usecase)
}

func newDashboardFactory(f *Factory) *dashhandler.DashboardHandler {
	usecase := dashusecase.NewDashboardUsecase(f.Players, f.Ledger, f.Stats)
	return dashhandler.NewDashboardHandler(usecase)
}
