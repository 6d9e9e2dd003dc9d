package dto

import "github.com/shopspring/decimal"

type WithdrawalInput struct {
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"        validate:"required,currency"`
	PaymentMethodID string          `json:"paymentMethodId" validate:"required,max=128"`
}

type WithdrawalResult struct {
	Success       bool            `json:"success"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	TransactionID string          `json:"transactionId"`
	Status        string          `json:"status"`
	Replayed      bool            `json:"replayed,omitempty"`
}
