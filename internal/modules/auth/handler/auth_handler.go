package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/auth/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/auth/usecase"
	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
	"github.com/rahulgarg55/casino-games-backend/pkg/validation"
)

type AuthHandler struct {
	usecase *usecase.AuthUsecase
}

func NewAuthHandler(u *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{usecase: u}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	var req dto.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, locale, "AuthHandler.Register.Parser", nil, i18n.MsgInvalidRequestBody, err.Error())
	}
	// never echo the password into the audit log
	audit := fiber.Map{"email": req.Email, "username": req.Username, "currency": req.Currency}
	if err := validation.Struct(&req); err != nil {
		return httpx.BadRequest(c, locale, "AuthHandler.Register.Validate", audit, i18n.MsgValidationError, validation.Message(err))
	}

	out, err := h.usecase.Register(c.UserContext(), req)
	if err != nil {
		return httpx.Fail(c, locale, "AuthHandler.Register.Usecase", audit, err)
	}
	return httpx.OK(c, locale, fiber.StatusCreated, i18n.MsgPlayerRegistered, out)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	locale := httpx.Locale(c)

	var req dto.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, locale, "AuthHandler.Login.Parser", nil, i18n.MsgInvalidRequestBody, err.Error())
	}
	audit := fiber.Map{"email": req.Email}
	if err := validation.Struct(&req); err != nil {
		return httpx.BadRequest(c, locale, "AuthHandler.Login.Validate", audit, i18n.MsgValidationError, validation.Message(err))
	}

	out, err := h.usecase.Login(c.UserContext(), req)
	if err != nil {
		return httpx.Fail(c, locale, "AuthHandler.Login.Usecase", audit, err)
	}
	return httpx.OK(c, locale, fiber.StatusOK, i18n.MsgLoginSuccessful, out)
}
