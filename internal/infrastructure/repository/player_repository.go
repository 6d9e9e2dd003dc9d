package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

// PlayerRepository owns the players table and is the only writer of player balances.
type PlayerRepository struct {
	dbWrite *gorm.DB
	dbRead  *gorm.DB
}

func NewPlayerRepository(dbWrite *gorm.DB, dbRead *gorm.DB) *PlayerRepository {
	return &PlayerRepository{dbWrite: dbWrite, dbRead: dbRead}
}

// WithTx returns a copy bound to tx for both reads and writes.
func (r *PlayerRepository) WithTx(tx *gorm.DB) *PlayerRepository {
	return &PlayerRepository{dbWrite: tx, dbRead: tx}
}

func (r *PlayerRepository) Create(ctx context.Context, p *model.Player) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if err := r.dbWrite.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByID returns an active player. Inactive players are reported as not found.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	var p model.Player
	err := r.dbWrite.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("player %d: %w", id, errs.ErrPlayerNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*model.Player, error) {
	var p model.Player
	err := r.dbRead.WithContext(ctx).
		Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) GetBalance(ctx context.Context, id int64) (decimal.Decimal, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Balance, nil
}

// ApplyDelta adds delta to the stored balance in a single UPDATE and returns the new balance.
// It does not enforce a non-negative balance; use Debit for guarded decrements.
func (r *PlayerRepository) ApplyDelta(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	delta = delta.Round(8) // match column NUMERIC(20,8)

	res := r.dbWrite.WithContext(ctx).
		Model(&model.Player{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, fmt.Errorf("player %d: %w", id, errs.ErrPlayerNotFound)
	}
	return r.GetBalance(ctx, id)
}

// Debit subtracts amount only when the balance covers it.
func (r *PlayerRepository) Debit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, errs.ErrInvalidAmount
	}
	amount = amount.Round(8)

	res := r.dbWrite.WithContext(ctx).
		Model(&model.Player{}).
		Where("id = ? AND is_active = ? AND balance >= ?", id, true, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, errs.ErrInsufficientBalance
	}
	return r.GetBalance(ctx, id)
}

func (r *PlayerRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.dbRead.WithContext(ctx).Model(&model.Player{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
