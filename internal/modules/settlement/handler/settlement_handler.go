package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/usecase"
	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
	"github.com/rahulgarg55/casino-games-backend/pkg/response"
	"github.com/rahulgarg55/casino-games-backend/pkg/validation"
)

type SettlementHandler struct {
	usecase *usecase.SettlementUsecase
}

func NewSettlementHandler(u *usecase.SettlementUsecase) *SettlementHandler {
	return &SettlementHandler{usecase: u}
}

func (h *SettlementHandler) Win(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	var req dto.WinInput
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, locale, "SettlementHandler.Win.Parser", req, i18n.MsgInvalidRequestBody, err.Error())
	}
	if err := validation.Struct(&req); err != nil {
		return httpx.BadRequest(c, locale, "SettlementHandler.Win.Validate", req, i18n.MsgValidationError, validation.Message(err))
	}

	out, err := h.usecase.ProcessWin(c.UserContext(), req)
	if err != nil {
		return httpx.Fail(c, locale, "SettlementHandler.Win.Usecase", req, err)
	}

	logger.WriteLogToFile("success", "SettlementHandler.Win", req, nil)
	status := fiber.StatusCreated
	if out.Replayed {
		status = fiber.StatusOK
	}
	return httpx.Settled(c, locale, status, i18n.MsgWinSettled, out, response.Settlement{
		NewBalance:    out.NewBalance,
		PlatformFee:   &out.PlatformFee,
		NetAmount:     &out.NetAmount,
		TransactionID: out.TransactionID,
	})
}

func (h *SettlementHandler) Wager(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	var req dto.WagerInput
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, locale, "SettlementHandler.Wager.Parser", req, i18n.MsgInvalidRequestBody, err.Error())
	}
	if err := validation.Struct(&req); err != nil {
		return httpx.BadRequest(c, locale, "SettlementHandler.Wager.Validate", req, i18n.MsgValidationError, validation.Message(err))
	}

	out, err := h.usecase.PlaceWager(c.UserContext(), req)
	if err != nil {
		return httpx.Fail(c, locale, "SettlementHandler.Wager.Usecase", req, err)
	}

	logger.WriteLogToFile("success", "SettlementHandler.Wager", req, nil)
	status := fiber.StatusCreated
	if out.Replayed {
		status = fiber.StatusOK
	}
	return httpx.Settled(c, locale, status, i18n.MsgWagerPlaced, out, response.Settlement{
		NewBalance:    out.NewBalance,
		TransactionID: out.TransactionID,
	})
}
