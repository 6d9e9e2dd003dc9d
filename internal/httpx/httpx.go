// Package httpx holds the request/response plumbing shared by module handlers.
package httpx

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/pkg/i18n"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
	"github.com/rahulgarg55/casino-games-backend/pkg/response"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Locale resolves the response language from Accept-Language.
func Locale(c *fiber.Ctx) i18n.Locale {
	return i18n.ResolveLocale(c.Get(fiber.HeaderAcceptLanguage))
}

// Fail logs err and writes the error envelope for it.
func Fail(c *fiber.Ctx, locale i18n.Locale, source string, payload any, err error) error {
	status, key := errs.HTTPStatus(err)
	detail := err.Error()
	logger.WriteLogToFile("failed", source, payload, &detail)

	if status >= http.StatusInternalServerError && status != http.StatusBadGateway && status != http.StatusServiceUnavailable {
		logger.WithField("source", source).Errorf("❌ %v", err)
		detail = i18n.Message(locale, i18n.MsgInternalError)
	} else {
		logger.WithField("source", source).Warnf("⚠️ %v", err)
	}
	return response.WriteError(c, status, i18n.Message(locale, key), detail)
}

// BadRequest writes a 400 for body parse or validation failures.
func BadRequest(c *fiber.Ctx, locale i18n.Locale, source string, payload any, key string, detail string) error {
	logger.WriteLogToFile("failed", source, payload, &detail)
	return response.WriteError(c, fiber.StatusBadRequest, i18n.Message(locale, key), detail)
}

func OK(c *fiber.Ctx, locale i18n.Locale, status int, key string, data any) error {
	return response.WriteSuccess(c, status, i18n.Message(locale, key), data)
}

// Settled is OK for balance-moving endpoints: the outcome is echoed at the
// top level as well as under data.
func Settled(c *fiber.Ctx, locale i18n.Locale, status int, key string, data any, s response.Settlement) error {
	return response.WriteSettlement(c, status, i18n.Message(locale, key), data, s)
}

// Page reads page/limit query params, clamped to sane bounds.
func Page(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// ParamInt64 parses a positive int64 route parameter.
func ParamInt64(c *fiber.Ctx, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
