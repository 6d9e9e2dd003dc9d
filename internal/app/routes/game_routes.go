package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/handler"
)

func NewGameRoutes(routerPoint fiber.Router, handler *handler.SettlementHandler) {
	routerPoint.Post("/win", handler.Win)
	routerPoint.Post("/wager", handler.Wager)
}
