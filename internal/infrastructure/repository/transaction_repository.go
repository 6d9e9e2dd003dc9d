package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

// TransactionRepository is the ledger entry writer. Entries are only appended;
// the sole mutation is a status transition out of pending.
type TransactionRepository struct {
	dbWrite *gorm.DB
	dbRead  *gorm.DB
}

func NewTransactionRepository(dbWrite *gorm.DB, dbRead *gorm.DB) *TransactionRepository {
	return &TransactionRepository{dbWrite: dbWrite, dbRead: dbRead}
}

func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{dbWrite: tx, dbRead: tx}
}

// Append stores entry, assigning its id and created_at.
func (r *TransactionRepository) Append(ctx context.Context, entry *model.Transaction) error {
	entry.ID = ""
	entry.Amount = entry.Amount.Round(8)
	if entry.Metadata == nil {
		entry.Metadata = datatypes.JSONMap{}
	}
	if err := r.dbWrite.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%s entry: %w", entry.TransactionType, errs.ErrDuplicateTransaction)
		}
		return err
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	return r.findOne(ctx, r.dbWrite.Where("id = ?", id))
}

func (r *TransactionRepository) FindByReferenceKey(ctx context.Context, txType model.TransactionType, key string) (*model.Transaction, error) {
	return r.findOne(ctx, r.dbWrite.Where("transaction_type = ? AND reference_key = ?", txType, key))
}

func (r *TransactionRepository) FindByExternalReference(ctx context.Context, txType model.TransactionType, ref string) (*model.Transaction, error) {
	return r.findOne(ctx, r.dbWrite.Where("transaction_type = ? AND external_reference = ?", txType, ref))
}

func (r *TransactionRepository) findOne(ctx context.Context, q *gorm.DB) (*model.Transaction, error) {
	var t model.Transaction
	err := q.WithContext(ctx).Order("created_at ASC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type ListFilter struct {
	PlayerID int64
	Type     model.TransactionType
	Status   model.TransactionStatus
	Page     int
	Limit    int
}

// ListByPlayer returns the player's entries, newest first, and the unpaginated total.
func (r *TransactionRepository) ListByPlayer(ctx context.Context, f ListFilter) ([]model.Transaction, int64, error) {
	q := r.dbRead.WithContext(ctx).Model(&model.Transaction{}).Where("player_id = ?", f.PlayerID)
	if f.Type != "" {
		q = q.Where("transaction_type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.Transaction
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(f.Limit).
		Offset(pageOffset(f.Page, f.Limit)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

type StatusUpdate struct {
	Status            model.TransactionStatus
	ExternalReference *string
	Metadata          map[string]any // merged into the existing metadata
}

// MarkStatus moves a pending entry to a new status. Amount is never touched.
func (r *TransactionRepository) MarkStatus(ctx context.Context, id string, upd StatusUpdate) (*model.Transaction, error) {
	entry, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.Editable() {
		return nil, fmt.Errorf("transaction %s is %s: %w", id, entry.Status, errs.ErrTransactionNotEditable)
	}

	meta := datatypes.JSONMap{}
	for k, v := range entry.Metadata {
		meta[k] = v
	}
	for k, v := range upd.Metadata {
		meta[k] = v
	}

	fields := map[string]any{
		"status":     upd.Status,
		"metadata":   meta,
		"updated_at": time.Now(),
	}
	if upd.ExternalReference != nil {
		fields["external_reference"] = *upd.ExternalReference
	}

	res := r.dbWrite.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("transaction %s: %w", id, errs.ErrTransactionNotEditable)
	}
	return r.FindByID(ctx, id)
}

// ListStalePending returns pending entries of txType created before olderThan.
func (r *TransactionRepository) ListStalePending(ctx context.Context, txType model.TransactionType, olderThan time.Time) ([]model.Transaction, error) {
	var out []model.Transaction
	err := r.dbRead.WithContext(ctx).
		Where("transaction_type = ? AND status = ? AND created_at < ?", txType, model.StatusPending, olderThan).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

type TypeTotal struct {
	TransactionType model.TransactionType `json:"type"`
	Count           int64                 `json:"count"`
	Total           decimal.Decimal       `json:"total"`
}

// SumByType aggregates completed entries per type. A zero from or to leaves that side open.
func (r *TransactionRepository) SumByType(ctx context.Context, from, to time.Time) ([]TypeTotal, error) {
	q := r.dbRead.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("transaction_type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", model.StatusCompleted)
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at <= ?", to)
	}

	var out []TypeTotal
	err := q.Group("transaction_type").Order("transaction_type").Scan(&out).Error
	return out, err
}

func (r *TransactionRepository) CountByStatus(ctx context.Context, txType model.TransactionType, status model.TransactionStatus) (int64, error) {
	var n int64
	err := r.dbRead.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("transaction_type = ? AND status = ?", txType, status).
		Count(&n).Error
	return n, err
}
