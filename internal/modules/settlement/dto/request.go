package dto

import "github.com/shopspring/decimal"

type WinInput struct {
	PlayerID    int64           `json:"playerId"    validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	GameRoundID string          `json:"gameRoundId" validate:"required,max=64"`
}

type WagerInput struct {
	PlayerID    int64           `json:"playerId"    validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	GameRoundID string          `json:"gameRoundId" validate:"required,max=64"`
}
