package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/metrics"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	feeusecase "github.com/rahulgarg55/casino-games-backend/internal/modules/fee/usecase"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/settlement/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

const publishTimeout = 2 * time.Second

type SettlementUsecase struct {
	tx      *repository.TxManager
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	fees    *feeusecase.ConfigLoader
	stream  *store.RedisLedgerStream
}

func NewSettlementUsecase(
	tx *repository.TxManager,
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	fees *feeusecase.ConfigLoader,
	stream *store.RedisLedgerStream,
) *SettlementUsecase {
	return &SettlementUsecase{tx: tx, players: players, ledger: ledger, fees: fees, stream: stream}
}

func winKey(playerID int64, round string) string   { return fmt.Sprintf("win:%d:%s", playerID, round) }
func wagerKey(playerID int64, round string) string { return fmt.Sprintf("wager:%d:%s", playerID, round) }

// ProcessWin credits a game win net of the platform fee. Fee entry, balance
// credit and win entry commit together; a repeated game round returns the
// original result without moving money.
func (u *SettlementUsecase) ProcessWin(ctx context.Context, in dto.WinInput) (out *dto.WinResult, err error) {
	defer func() { metrics.ObserveSettlement("win", err, out != nil && out.Replayed) }()

	if !model.ValidAmount(in.Amount) {
		return nil, errs.ErrInvalidAmount
	}
	ref := winKey(in.PlayerID, in.GameRoundID)

	if prev, err := u.ledger.FindByReferenceKey(ctx, model.TransactionWin, ref); err == nil {
		return u.replayWin(ctx, prev, in.Amount)
	} else if !errors.Is(err, errs.ErrTransactionNotFound) {
		return nil, err
	}

	// Start
	player, err := u.players.GetByID(ctx, in.PlayerID)
	if err != nil {
		return nil, err
	}

	// FeeComputed
	cfg, err := u.fees.Current(ctx)
	if err != nil {
		return nil, err
	}
	fee, err := feeusecase.Calculate(in.Amount, cfg)
	if err != nil {
		return nil, err
	}

	meta := datatypes.JSONMap{
		"original_amount": in.Amount.String(),
		"platform_fee":    fee.FeeAmount.String(),
		"fee_percentage":  effectivePercentage(cfg).String(),
		"game_round_id":   in.GameRoundID,
	}

	var (
		feeEntry   *model.Transaction
		winEntry   *model.Transaction
		newBalance decimal.Decimal
	)
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		players := u.players.WithTx(tx)
		ledger := u.ledger.WithTx(tx)

		// The win entry carries the net amount; the fee entry records the
		// deduction and is not applied to the balance again.
		if fee.FeeAmount.IsPositive() {
			feeRef := "fee:" + ref
			feeEntry = &model.Transaction{
				PlayerID:        player.ID,
				Amount:          fee.FeeAmount.Neg(),
				Currency:        player.Currency,
				TransactionType: model.TransactionPlatformFee,
				Status:          model.StatusCompleted,
				ReferenceKey:    &feeRef,
				Metadata: datatypes.JSONMap{
					"original_amount": meta["original_amount"],
					"fee_percentage":  meta["fee_percentage"],
					"game_round_id":   in.GameRoundID,
				},
			}
			if err := ledger.Append(ctx, feeEntry); err != nil {
				return err
			}
		}

		// BalanceUpdated
		bal, err := players.ApplyDelta(ctx, player.ID, fee.NetAmount)
		if err != nil {
			return err
		}
		newBalance = bal

		// Ledgered
		winEntry = &model.Transaction{
			PlayerID:        player.ID,
			Amount:          fee.NetAmount,
			Currency:        player.Currency,
			TransactionType: model.TransactionWin,
			Status:          model.StatusCompleted,
			ReferenceKey:    &ref,
			Metadata:        meta,
		}
		return ledger.Append(ctx, winEntry)
	})
	if errors.Is(err, errs.ErrDuplicateTransaction) {
		// lost a race with the same game round
		prev, findErr := u.ledger.FindByReferenceKey(ctx, model.TransactionWin, ref)
		if findErr != nil {
			return nil, err
		}
		return u.replayWin(ctx, prev, in.Amount)
	}
	if err != nil {
		return nil, fmt.Errorf("settle win %s: %w", ref, err)
	}

	u.publish(ctx, feeEntry, winEntry)
	metrics.AddPlatformFee(string(player.Currency), fee.FeeAmount)
	logger.Infof("✅ win settled player=%d round=%s gross=%s fee=%s net=%s",
		player.ID, in.GameRoundID, in.Amount, fee.FeeAmount, fee.NetAmount)

	// Done
	return &dto.WinResult{
		Success:       true,
		NewBalance:    newBalance,
		PlatformFee:   fee.FeeAmount,
		NetAmount:     fee.NetAmount,
		TransactionID: winEntry.ID,
	}, nil
}

func (u *SettlementUsecase) replayWin(ctx context.Context, prev *model.Transaction, gross decimal.Decimal) (*dto.WinResult, error) {
	original := metaDecimal(prev.Metadata, "original_amount")
	if !original.Equal(gross) {
		return nil, fmt.Errorf("%w: game round already settled with amount %s", errs.ErrDuplicateTransaction, original)
	}
	bal, err := u.players.GetBalance(ctx, prev.PlayerID)
	if err != nil {
		return nil, err
	}
	return &dto.WinResult{
		Success:       true,
		NewBalance:    bal,
		PlatformFee:   metaDecimal(prev.Metadata, "platform_fee"),
		NetAmount:     prev.Amount,
		TransactionID: prev.ID,
		Replayed:      true,
	}, nil
}

// PlaceWager debits a stake for a game round when the balance covers it.
func (u *SettlementUsecase) PlaceWager(ctx context.Context, in dto.WagerInput) (out *dto.WagerResult, err error) {
	defer func() { metrics.ObserveSettlement("wager", err, out != nil && out.Replayed) }()

	if !model.ValidAmount(in.Amount) {
		return nil, errs.ErrInvalidAmount
	}
	ref := wagerKey(in.PlayerID, in.GameRoundID)

	if prev, err := u.ledger.FindByReferenceKey(ctx, model.TransactionWager, ref); err == nil {
		return u.replayWager(ctx, prev, in.Amount)
	} else if !errors.Is(err, errs.ErrTransactionNotFound) {
		return nil, err
	}

	player, err := u.players.GetByID(ctx, in.PlayerID)
	if err != nil {
		return nil, err
	}

	var (
		entry      *model.Transaction
		newBalance decimal.Decimal
	)
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		bal, err := u.players.WithTx(tx).Debit(ctx, player.ID, in.Amount)
		if err != nil {
			return err
		}
		newBalance = bal

		entry = &model.Transaction{
			PlayerID:        player.ID,
			Amount:          in.Amount.Neg(),
			Currency:        player.Currency,
			TransactionType: model.TransactionWager,
			Status:          model.StatusCompleted,
			ReferenceKey:    &ref,
			Metadata:        datatypes.JSONMap{"game_round_id": in.GameRoundID},
		}
		return u.ledger.WithTx(tx).Append(ctx, entry)
	})
	if errors.Is(err, errs.ErrDuplicateTransaction) {
		prev, findErr := u.ledger.FindByReferenceKey(ctx, model.TransactionWager, ref)
		if findErr != nil {
			return nil, err
		}
		return u.replayWager(ctx, prev, in.Amount)
	}
	if err != nil {
		return nil, fmt.Errorf("place wager %s: %w", ref, err)
	}

	u.publish(ctx, entry)
	logger.Infof("✅ wager placed player=%d round=%s amount=%s", player.ID, in.GameRoundID, in.Amount)

	return &dto.WagerResult{Success: true, NewBalance: newBalance, TransactionID: entry.ID}, nil
}

func (u *SettlementUsecase) replayWager(ctx context.Context, prev *model.Transaction, amount decimal.Decimal) (*dto.WagerResult, error) {
	if !prev.Amount.Neg().Equal(amount) {
		return nil, fmt.Errorf("%w: game round already wagered %s", errs.ErrDuplicateTransaction, prev.Amount.Neg())
	}
	bal, err := u.players.GetBalance(ctx, prev.PlayerID)
	if err != nil {
		return nil, err
	}
	return &dto.WagerResult{Success: true, NewBalance: bal, TransactionID: prev.ID, Replayed: true}, nil
}

// publish is best effort; the ledger rows are already committed.
func (u *SettlementUsecase) publish(ctx context.Context, entries ...*model.Transaction) {
	if u.stream == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := u.stream.PublishAll(pctx, entries...); err != nil {
		logger.Warnf("⚠️ ledger stream publish failed: %v", err)
	}
}

func effectivePercentage(cfg *model.PlatformFeeConfig) decimal.Decimal {
	if !cfg.IsActive {
		return decimal.Zero
	}
	return cfg.FeePercentage
}

func metaDecimal(meta datatypes.JSONMap, key string) decimal.Decimal {
	switch v := meta[key].(type) {
	case string:
		d, _ := decimal.NewFromString(v)
		return d
	case float64:
		return decimal.NewFromFloat(v)
	}
	return decimal.Zero
}
