package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/app/factory"
)

func NewAdminRoutes(routerPoint fiber.Router, container *factory.Container) {
	routerPoint.Get("/dashboard/summary", container.DashboardHandler.Summary)

	routerPoint.Get("/fee-config", container.FeeHandler.GetCurrent)
	routerPoint.Put("/fee-config", container.FeeHandler.Update)
	routerPoint.Get("/fee-config/history", container.FeeHandler.History)

	routerPoint.Get("/players/:id/transactions", container.WalletHandler.PlayerHistory)
}
