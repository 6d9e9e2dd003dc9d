package dto

import "github.com/shopspring/decimal"

type UpdateFeeConfigInput struct {
	FeePercentage decimal.Decimal `json:"feePercentage"`
	IsActive      *bool           `json:"isActive" validate:"required"`
	MinFeeAmount  decimal.Decimal `json:"minFeeAmount"`
	MaxFeeAmount  decimal.Decimal `json:"maxFeeAmount"`
}
