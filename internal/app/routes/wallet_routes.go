package routes

import (
	"github.com/gofiber/fiber/v2"

	wallethandler "github.com/rahulgarg55/casino-games-backend/internal/modules/wallet/handler"
	withdrawalhandler "github.com/rahulgarg55/casino-games-backend/internal/modules/withdrawal/handler"
)

func NewWalletRoutes(routerPoint fiber.Router, wallet *wallethandler.WalletHandler, withdrawal *withdrawalhandler.WithdrawalHandler) {
	routerPoint.Get("/balance", wallet.Balance)
	routerPoint.Get("/transactions", wallet.History)
	routerPoint.Post("/withdrawals", withdrawal.Create)
}

func NewWebhookRoutes(routerPoint fiber.Router, wallet *wallethandler.WalletHandler) {
	routerPoint.Post("/payments", wallet.PaymentWebhook)
}
