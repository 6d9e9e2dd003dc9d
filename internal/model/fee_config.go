package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformFeeConfig rows are append-only; the newest row is the current configuration.
type PlatformFeeConfig struct {
	ID            int64           `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	FeePercentage decimal.Decimal `json:"feePercentage" gorm:"column:fee_percentage;type:numeric(5,2);not null"`
	IsActive      bool            `json:"isActive" gorm:"column:is_active;not null"`
	MinFeeAmount  decimal.Decimal `json:"minFeeAmount" gorm:"column:min_fee_amount;type:numeric(20,8);not null;default:0"`
	MaxFeeAmount  decimal.Decimal `json:"maxFeeAmount" gorm:"column:max_fee_amount;type:numeric(20,8);not null"`
	UpdatedBy     *int64          `json:"updatedBy,omitempty" gorm:"column:updated_by"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (PlatformFeeConfig) TableName() string { return "platform_fee_configs" }
