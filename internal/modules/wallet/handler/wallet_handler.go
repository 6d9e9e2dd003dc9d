package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/wallet/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/wallet/usecase"
	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
	"github.com/rahulgarg55/casino-games-backend/pkg/response"
	"github.com/rahulgarg55/casino-games-backend/pkg/validation"
)

type WalletHandler struct {
	usecase *usecase.WalletUsecase
}

func NewWalletHandler(u *usecase.WalletUsecase) *WalletHandler {
	return &WalletHandler{usecase: u}
}

func (h *WalletHandler) Balance(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	out, err := h.usecase.Balance(c.UserContext(), middleware.PlayerID(c))
	if err != nil {
		return httpx.Fail(c, locale, "WalletHandler.Balance", nil, err)
	}
	return httpx.OK(c, locale, fiber.StatusOK, i18n.MsgBalanceFetched, out)
}

// History lists the caller's own ledger entries.
func (h *WalletHandler) History(c *fiber.Ctx) error {
	return h.history(c, middleware.PlayerID(c), "WalletHandler.History")
}

// PlayerHistory lists any player's ledger entries (admin).
func (h *WalletHandler) PlayerHistory(c *fiber.Ctx) error {
	playerID, ok := httpx.ParamInt64(c, "id")
	if !ok {
		return httpx.Fail(c, httpx.Locale(c), "WalletHandler.PlayerHistory", c.Params("id"), errs.ErrPlayerNotFound)
	}
	return h.history(c, playerID, "WalletHandler.PlayerHistory")
}

func (h *WalletHandler) history(c *fiber.Ctx, playerID int64, source string) error {
	locale := httpx.Locale(c)

	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return httpx.BadRequest(c, locale, source+".Parser", nil, i18n.MsgInvalidRequestBody, err.Error())
	}
	if err := validation.Struct(&q); err != nil {
		return httpx.BadRequest(c, locale, source+".Validate", q, i18n.MsgValidationError, validation.Message(err))
	}
	page, limit := httpx.Page(c)

	rows, total, err := h.usecase.History(c.UserContext(), repository.ListFilter{
		PlayerID: playerID,
		Type:     model.TransactionType(q.Type),
		Status:   model.TransactionStatus(q.Status),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return httpx.Fail(c, locale, source, q, err)
	}
	return response.WriteSuccessWithMeta(c, fiber.StatusOK, i18n.Message(locale, i18n.MsgHistoryFetched), rows, response.NewMeta(page, limit, total))
}

// PaymentWebhook receives signed payment processor events.
func (h *WalletHandler) PaymentWebhook(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	var req dto.PaymentEventInput
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, locale, "WalletHandler.PaymentWebhook.Parser", nil, i18n.MsgInvalidRequestBody, err.Error())
	}
	if err := validation.Struct(&req); err != nil {
		return httpx.BadRequest(c, locale, "WalletHandler.PaymentWebhook.Validate", req, i18n.MsgValidationError, validation.Message(err))
	}

	out, err := h.usecase.HandlePaymentEvent(c.UserContext(), req)
	if err != nil {
		return httpx.Fail(c, locale, "WalletHandler.PaymentWebhook.Usecase", req, err)
	}

	logger.WriteLogToFile("success", "WalletHandler.PaymentWebhook", req, nil)
	return httpx.OK(c, locale, fiber.StatusOK, i18n.MsgWebhookProcessed, out)
}
