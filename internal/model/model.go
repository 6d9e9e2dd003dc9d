package model

import "github.com/shopspring/decimal"

// AmountScale is the number of fractional digits stored for money columns.
const AmountScale = 8

// All lists the models managed by auto-migration.
func All() []any {
	return []any{&Player{}, &Transaction{}, &PlatformFeeConfig{}}
}

func ValidCurrency(c string) bool {
	switch Currency(c) {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR, CurrencyCAD, CurrencyAUD:
		return true
	}
	return false
}

// ValidAmount reports whether d is positive and fits NUMERIC(20,8) without rounding.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(AmountScale))
}
