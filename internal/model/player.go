package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

// Player represents a row of the players table.
type Player struct {
	ID           int64           `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Email        string          `json:"email" gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Username     string          `json:"username" gorm:"column:username;type:varchar(64);not null"`
	PasswordHash string          `json:"-" gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role            `json:"role" gorm:"column:role;type:varchar(16);not null;default:player"`
	Currency     Currency        `json:"currency" gorm:"column:currency;type:varchar(3);not null"`
	Balance      decimal.Decimal `json:"balance" gorm:"column:balance;type:numeric(20,8);not null;default:0"`
	IsActive     bool            `json:"isActive" gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (Player) TableName() string { return "players" }
