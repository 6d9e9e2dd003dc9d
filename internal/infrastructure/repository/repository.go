package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction on the write connection.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(dbWrite *gorm.DB) *TxManager {
	return &TxManager{db: dbWrite}
}

// Ping checks the write pool can reach the database.
func (m *TxManager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Do commits when fn returns nil and rolls back otherwise.
func (m *TxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without an error translator
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
