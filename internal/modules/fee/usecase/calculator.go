package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

// Scale of every monetary column.
const Scale = model.AmountScale

var hundred = decimal.NewFromInt(100)

type Fee struct {
	FeeAmount decimal.Decimal
	NetAmount decimal.Decimal
}

// Calculate splits a gross win into platform fee and net credit.
// The percentage fee is clamped to [min, max] and never exceeds gross.
// A gross with more than Scale fractional digits is rejected.
func Calculate(gross decimal.Decimal, cfg *model.PlatformFeeConfig) (Fee, error) {
	if !model.ValidAmount(gross) {
		return Fee{}, errs.ErrInvalidAmount
	}
	if cfg == nil {
		return Fee{}, errs.ErrConfigurationMissing
	}
	if !cfg.IsActive {
		return Fee{FeeAmount: decimal.Zero, NetAmount: gross}, nil
	}

	fee := gross.Mul(cfg.FeePercentage).Div(hundred)
	if fee.LessThan(cfg.MinFeeAmount) {
		fee = cfg.MinFeeAmount
	}
	if fee.GreaterThan(cfg.MaxFeeAmount) {
		fee = cfg.MaxFeeAmount
	}
	fee = fee.Round(Scale)
	if fee.GreaterThan(gross) {
		fee = gross
	}

	return Fee{FeeAmount: fee, NetAmount: gross.Sub(fee)}, nil
}
