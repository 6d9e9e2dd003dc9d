package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
)

const HeaderSignature = "X-Signature"

// Sign returns the hex HMAC-SHA256 of body.
func Sign(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Signature verifies X-Signature against the raw request body.
// An empty secret rejects every request.
func Signature(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got, err := hex.DecodeString(c.Get(HeaderSignature))
		if secret == "" || err != nil || len(got) == 0 {
			return httpx.Fail(c, httpx.Locale(c), "middleware.Signature", nil, errs.ErrInvalidSignature)
		}

		want, _ := hex.DecodeString(Sign(secret, c.Body()))
		if !hmac.Equal(got, want) {
			return httpx.Fail(c, httpx.Locale(c), "middleware.Signature", nil, errs.ErrInvalidSignature)
		}
		return c.Next()
	}
}
