package factory

import (
	settlementhandler "github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/handler"
	settlementusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/usecase"
	wallethandler "github.com/rahulgarg55/casino-games-backend/internal/modules/wallet/handler"
	walletusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/wallet/usecase"
	withdrawalhandler "github.com/rahulgarg55/casino-games-backend/internal/modules/withdrawal/handler"
	withdrawalusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/withdrawal/usecase"
)

func newWalletFactory(f *Factory) *wallethandler.WalletHandler {
	usecase := walletusecase.NewWalletUsecase(f.Tx, f.Players, f.Ledger, f.Stream)
	return wallethandler.NewWalletHandler(usecase)
}

func newSettlementFactory(f *Factory) *settlementhandler.SettlementHandler {
	usecase := settlementusecase.NewSettlementUsecase(f.Tx, f.Players, f.Ledger, f.FeeLoader, f.Stream)
	return settlementhandler.NewSettlementHandler(usecase)
}

func newWithdrawalFactory(f *Factory) *withdrawalhandler.WithdrawalHandler {
	usecase := withdrawalusecase.NewWithdrawalUsecase(f.Tx, f.Players, f.Ledger, f.PayoutClient, f.Idempotency, f.Stream)
	return withdrawalhandler.NewWithdrawalHandler(usecase)
}
