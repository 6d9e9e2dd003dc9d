package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
	"github.com/rahulgarg55/casino-games-backend/internal/middleware"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/withdrawal/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/withdrawal/usecase"
	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
	"github.com/rahulgarg55/casino-games-backend/pkg/response"
	"github.com/rahulgarg55/casino-games-backend/pkg/validation"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type WithdrawalHandler struct {
	usecase *usecase.WithdrawalUsecase
}

func NewWithdrawalHandler(u *usecase.WithdrawalUsecase) *WithdrawalHandler {
	return &WithdrawalHandler{usecase: u}
}

func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	var req dto.WithdrawalInput
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, locale, "WithdrawalHandler.Create.Parser", req, i18n.MsgInvalidRequestBody, err.Error())
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if err := validation.Struct(&req); err != nil {
		return httpx.BadRequest(c, locale, "WithdrawalHandler.Create.Validate", req, i18n.MsgValidationError, validation.Message(err))
	}

	idemKey := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
	if len(idemKey) > 128 {
		return httpx.BadRequest(c, locale, "WithdrawalHandler.Create.Validate", req, i18n.MsgValidationError, "Idempotency-Key must have maximum length 128")
	}

	playerID := middleware.PlayerID(c)
	out, err := h.usecase.Withdraw(c.UserContext(), playerID, idemKey, req)
	if err != nil {
		return httpx.Fail(c, locale, "WithdrawalHandler.Create.Usecase", fiber.Map{"player_id": playerID, "request": req}, err)
	}

	logger.WriteLogToFile("success", "WithdrawalHandler.Create", fiber.Map{"player_id": playerID, "request": req}, nil)
	status := fiber.StatusCreated
	if out.Replayed {
		status = fiber.StatusOK
	}
	return httpx.Settled(c, locale, status, i18n.MsgWithdrawalCompleted, out, response.Settlement{
		NewBalance:    out.NewBalance,
		TransactionID: out.TransactionID,
	})
}
