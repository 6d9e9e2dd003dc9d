package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
)

type FeeConfigRepository struct {
	dbWrite *gorm.DB
	dbRead  *gorm.DB
}

func NewFeeConfigRepository(dbWrite *gorm.DB, dbRead *gorm.DB) *FeeConfigRepository {
	return &FeeConfigRepository{dbWrite: dbWrite, dbRead: dbRead}
}

// Current returns the newest configuration row.
func (r *FeeConfigRepository) Current(ctx context.Context) (*model.PlatformFeeConfig, error) {
	var c model.PlatformFeeConfig
	err := r.dbWrite.WithContext(ctx).Order("id DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrConfigurationMissing
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *FeeConfigRepository) Create(ctx context.Context, c *model.PlatformFeeConfig) error {
	c.ID = 0
	return r.dbWrite.WithContext(ctx).Create(c).Error
}

func (r *FeeConfigRepository) History(ctx context.Context, page, limit int) ([]model.PlatformFeeConfig, int64, error) {
	q := r.dbRead.WithContext(ctx).Model(&model.PlatformFeeConfig{}).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.PlatformFeeConfig
	err := q.Order("id DESC").Limit(limit).Offset(pageOffset(page, limit)).Find(&out).Error
	return out, total, err
}
