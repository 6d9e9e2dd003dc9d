package dto

import "github.com/shopspring/decimal"

type BalanceOutput struct {
	PlayerID int64           `json:"playerId"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type PaymentEventOutput struct {
	EventID       string           `json:"eventId"`
	Applied       bool             `json:"applied"`
	TransactionID string           `json:"transactionId,omitempty"`
	NewBalance    *decimal.Decimal `json:"newBalance,omitempty"`
}
