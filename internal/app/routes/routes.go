package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahulgarg55/casino-games-backend/internal/app/factory"
	"github.com/rahulgarg55/casino-games-backend/internal/config"
	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

func NewRoutes(app *fiber.App, container *factory.Container, cfg *config.Config) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routerApi := app.Group("/api")

	// Register healthz routes
	healthzRoutes := routerApi.Group("/healthz")
	NewHealthzRoutes(healthzRoutes, container.Checks)

	// Auth Routes
	routerAuth := routerApi.Group("/auth")
	NewAuthRoutes(routerAuth, container.AuthHandler)

	// Wallet Routes
	routerWallet := routerApi.Group("/wallet", middleware.JWTAuth(cfg.Auth.JWTSecret))
	NewWalletRoutes(routerWallet, container.WalletHandler, container.WithdrawalHandler)

	// Game server callbacks
	routerGames := routerApi.Group("/games", middleware.Signature(cfg.Webhooks.GameServerSecret))
	NewGameRoutes(routerGames, container.SettlementHandler)

	// Payment processor webhooks
	routerWebhooks := routerApi.Group("/webhooks", middleware.Signature(cfg.Webhooks.PaymentWebhookSecret))
	NewWebhookRoutes(routerWebhooks, container.WalletHandler)

	// Admin Routes
	routerAdmin := routerApi.Group("/admin",
		middleware.JWTAuth(cfg.Auth.JWTSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	NewAdminRoutes(routerAdmin, container)
}
