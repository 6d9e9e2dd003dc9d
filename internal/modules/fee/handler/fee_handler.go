package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/fee/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/fee/usecase"
	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
	"github.com/rahulgarg55/casino-games-backend/pkg/response"
	"github.com/rahulgarg55/casino-games-backend/pkg/validation"
)

type FeeHandler struct {
	usecase *usecase.FeeUsecase
}

func NewFeeHandler(u *usecase.FeeUsecase) *FeeHandler {
	return &FeeHandler{usecase: u}
}

func (h *FeeHandler) GetCurrent(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	cfg, err := h.usecase.Current(c.UserContext())
	if err != nil {
		return httpx.Fail(c, locale, "FeeHandler.GetCurrent", nil, err)
	}
	return httpx.OK(c, locale, fiber.StatusOK, i18n.MsgFeeConfigFetched, cfg)
}

func (h *FeeHandler) Update(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	var req dto.UpdateFeeConfigInput
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, locale, "FeeHandler.Update.Parser", req, i18n.MsgInvalidRequestBody, err.Error())
	}
	if err := validation.Struct(&req); err != nil {
		return httpx.BadRequest(c, locale, "FeeHandler.Update.Validate", req, i18n.MsgValidationError, validation.Message(err))
	}

	adminID := middleware.PlayerID(c)
	cfg, err := h.usecase.Update(c.UserContext(), adminID, req)
	if err != nil {
		return httpx.Fail(c, locale, "FeeHandler.Update.Usecase", req, err)
	}

	logger.WriteLogToFile("success", "FeeHandler.Update", req, nil)
	return httpx.OK(c, locale, fiber.StatusOK, i18n.MsgFeeConfigUpdated, cfg)
}

func (h *FeeHandler) History(c *fiber.Ctx) error {
	locale := httpx.Locale(c)
	page, limit := httpx.Page(c)

	rows, total, err := h.usecase.History(c.UserContext(), page, limit)
	if err != nil {
		return httpx.Fail(c, locale, "FeeHandler.History", nil, err)
	}
	return response.WriteSuccessWithMeta(c, fiber.StatusOK, i18n.Message(locale, i18n.MsgFeeConfigFetched), rows, response.NewMeta(page, limit, total))
}
