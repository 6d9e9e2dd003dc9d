package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/httpx"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

const (
	localPlayerID = "playerId"
	localRole     = "role"
)

type Claims struct {
	PlayerID int64      `json:"playerId"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for the player.
func GenerateToken(secret string, ttl time.Duration, playerID int64, role model.Role) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		PlayerID: playerID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(playerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return token, exp, err
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.PlayerID <= 0 {
		return nil, errors.New("invalid token payload")
	}
	return claims, nil
}

// JWTAuth requires a valid "Bearer" token and stores the caller in Locals.
func JWTAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return httpx.Fail(c, httpx.Locale(c), "middleware.JWTAuth", nil,
				fmt.Errorf("%w: missing bearer token", errs.ErrUnauthorized))
		}

		claims, err := ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return httpx.Fail(c, httpx.Locale(c), "middleware.JWTAuth", nil,
				fmt.Errorf("%w: %v", errs.ErrUnauthorized, err))
		}

		c.Locals(localPlayerID, claims.PlayerID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := Role(c)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return httpx.Fail(c, httpx.Locale(c), "middleware.RequireRole", fiber.Map{"role": role},
			fmt.Errorf("%w: role %q", errs.ErrForbidden, role))
	}
}

func PlayerID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(localPlayerID).(int64)
	return id
}

func Role(c *fiber.Ctx) model.Role {
	role, _ := c.Locals(localRole).(model.Role)
	return role
}
