package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/fee/dto"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

type FeeUsecase struct {
	repo   *repository.FeeConfigRepository
	loader *ConfigLoader
}

func NewFeeUsecase(repo *repository.FeeConfigRepository, loader *ConfigLoader) *FeeUsecase {
	return &FeeUsecase{repo: repo, loader: loader}
}

func (u *FeeUsecase) Current(ctx context.Context) (*model.PlatformFeeConfig, error) {
	return u.loader.Current(ctx)
}

// Update appends a new configuration row and drops the cached copy.
func (u *FeeUsecase) Update(ctx context.Context, adminID int64, in dto.UpdateFeeConfigInput) (*model.PlatformFeeConfig, error) {
	if err := validateConfig(in); err != nil {
		return nil, err
	}

	cfg := &model.PlatformFeeConfig{
		FeePercentage: in.FeePercentage,
		IsActive:      *in.IsActive,
		MinFeeAmount:  in.MinFeeAmount.Round(Scale),
		MaxFeeAmount:  in.MaxFeeAmount.Round(Scale),
		UpdatedBy:     &adminID,
	}
	if err := u.repo.Create(ctx, cfg); err != nil {
		return nil, err
	}

	if err := u.loader.Invalidate(ctx); err != nil {
		// the next cache refresh replaces the stale copy
		logger.Warnf("⚠️ fee config cache invalidate failed: %v", err)
	}
	logger.Infof("✅ fee config %d set by admin %d: %s%% [%s, %s] active=%t",
		cfg.ID, adminID, cfg.FeePercentage, cfg.MinFeeAmount, cfg.MaxFeeAmount, cfg.IsActive)
	return cfg, nil
}

func (u *FeeUsecase) History(ctx context.Context, page, limit int) ([]model.PlatformFeeConfig, int64, error) {
	return u.repo.History(ctx, page, limit)
}

func validateConfig(in dto.UpdateFeeConfigInput) error {
	switch {
	case in.FeePercentage.IsNegative() || in.FeePercentage.GreaterThan(hundred):
		return fmt.Errorf("%w: feePercentage must be between 0 and 100", errs.ErrInvalidFeeConfig)
	case !in.FeePercentage.Equal(in.FeePercentage.Round(2)):
		return fmt.Errorf("%w: feePercentage allows at most 2 decimal places", errs.ErrInvalidFeeConfig)
	case in.MinFeeAmount.IsNegative():
		return fmt.Errorf("%w: minFeeAmount must not be negative", errs.ErrInvalidFeeConfig)
	case in.MaxFeeAmount.LessThan(in.MinFeeAmount):
		return fmt.Errorf("%w: maxFeeAmount must be >= minFeeAmount", errs.ErrInvalidFeeConfig)
	case in.MaxFeeAmount.Equal(decimal.Zero) && in.FeePercentage.IsPositive():
		return fmt.Errorf("%w: maxFeeAmount must be positive when a fee percentage is set", errs.ErrInvalidFeeConfig)
	}
	return nil
}
