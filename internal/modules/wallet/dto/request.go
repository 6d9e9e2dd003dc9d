package dto

import "github.com/shopspring/decimal"

const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
	EventPayoutFailed     = "payout.failed"
)

// PaymentEventInput is the payment processor webhook body.
type PaymentEventInput struct {
	EventID           string          `json:"eventId"           validate:"required,max=128"`
	Type              string          `json:"type"              validate:"required,oneof=payment.succeeded payment.failed payout.failed"`
	PlayerID          int64           `json:"playerId"          validate:"required,gt=0"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"          validate:"required,currency"`
	ExternalReference string          `json:"externalReference" validate:"required,max=128"`
	Reason            string          `json:"reason,omitempty"  validate:"max=512"`
}

type HistoryQuery struct {
	Type   string `query:"type"   validate:"omitempty,oneof=topup withdrawal wager win platform_fee"`
	Status string `query:"status" validate:"omitempty,oneof=pending completed failed cancelled disputed"`
}
