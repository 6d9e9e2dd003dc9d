package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTopup       TransactionType = "topup"
	TransactionWithdrawal  TransactionType = "withdrawal"
	TransactionWager       TransactionType = "wager"
	TransactionWin         TransactionType = "win"
	TransactionPlatformFee TransactionType = "platform_fee"
)

var TransactionTypes = []TransactionType{
	TransactionTopup,
	TransactionWithdrawal,
	TransactionWager,
	TransactionWin,
	TransactionPlatformFee,
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
	StatusDisputed  TransactionStatus = "disputed"
)

// Transaction is a ledger entry. Amount is signed: debits and fees are negative.
type Transaction struct {
	ID                string            `json:"id" gorm:"column:id;type:varchar(36);primaryKey"`
	PlayerID          int64             `json:"playerId" gorm:"column:player_id;not null;index:idx_transactions_player_created,priority:1"`
	Amount            decimal.Decimal   `json:"amount" gorm:"column:amount;type:numeric(20,8);not null"`
	Currency          Currency          `json:"currency" gorm:"column:currency;type:varchar(3);not null"`
	TransactionType   TransactionType   `json:"type" gorm:"column:transaction_type;type:varchar(16);not null;uniqueIndex:idx_transactions_type_ref,priority:1"`
	Status            TransactionStatus `json:"status" gorm:"column:status;type:varchar(16);not null;index"`
	ExternalReference *string           `json:"externalReference,omitempty" gorm:"column:external_reference;type:varchar(128);index"`
	ReferenceKey      *string           `json:"referenceKey,omitempty" gorm:"column:reference_key;type:varchar(160);uniqueIndex:idx_transactions_type_ref,priority:2"`
	Metadata          datatypes.JSONMap `json:"metadata,omitempty" gorm:"column:metadata"`
	CreatedAt         time.Time         `json:"createdAt" gorm:"column:created_at;autoCreateTime;index:idx_transactions_player_created,priority:2"`
	UpdatedAt         time.Time         `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Editable reports whether the entry may still change status.
func (t *Transaction) Editable() bool {
	return t.Status == StatusPending
}
