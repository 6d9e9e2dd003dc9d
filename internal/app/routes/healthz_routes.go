package routes

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
	"github.com/rahulgarg55/casino-games-backend/pkg/response"
)

const readyTimeout = time.Second

// NewHealthzRoutes serves liveness at / and readiness at /ready. Readiness
// runs every check and answers 503 while any of them fails.
func NewHealthzRoutes(routerHealthz fiber.Router, checks map[string]func(context.Context) error) {
	routerHealthz.Get("/", func(c *fiber.Ctx) error {
		return response.WriteSuccess(c, fiber.StatusOK, "API is alive", nil)
	})

	routerHealthz.Get("/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
		defer cancel()

		status := make(map[string]string, len(checks))
		var down []string
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				down = append(down, name)
				continue
			}
			status[name] = "ok"
		}

		if len(down) > 0 {
			sort.Strings(down)
			logger.Warnf("⚠️ readiness failed: %s", strings.Join(down, ", "))
			resp := response.ErrorResponse("API is not ready", strings.Join(down, ", ")+" unavailable")
			resp.Data = status
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
		return response.WriteSuccess(c, fiber.StatusOK, "API is ready", status)
	})
}
