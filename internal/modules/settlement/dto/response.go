package dto

import "github.com/shopspring/decimal"

type WinResult struct {
	Success       bool            `json:"success"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	PlatformFee   decimal.Decimal `json:"platformFee"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	TransactionID string          `json:"transactionId"`
	Replayed      bool            `json:"replayed"`
}

type WagerResult struct {
	Success       bool            `json:"success"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	TransactionID string          `json:"transactionId"`
	Replayed      bool            `json:"replayed"`
}
