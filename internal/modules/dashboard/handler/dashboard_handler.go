package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/dashboard/usecase"
	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
)

type DashboardHandler struct {
	usecase *usecase.DashboardUsecase
}

func NewDashboardHandler(u *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{usecase: u}
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	out, err := h.usecase.Summary(c.UserContext())
	if err != nil {
		return httpx.Fail(c, locale, "DashboardHandler.Summary.Usecase", nil, err)
	}
	return httpx.OK(c, locale, fiber.StatusOK, i18n.MsgDashboardFetched, out)
}
