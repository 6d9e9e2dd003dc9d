package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/modules/auth/handler"
)

func NewAuthRoutes(routerPoint fiber.Router, handler *handler.AuthHandler) {
	routerPoint.Post("/register", handler.Register)
	routerPoint.Post("/login", handler.Login)
}
