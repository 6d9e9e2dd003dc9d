package dto

import (
	"time"

	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Currency string `json:"currency" validate:"omitempty,currency"`
}

type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenOutput struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Player    *model.Player `json:"player"`
}
