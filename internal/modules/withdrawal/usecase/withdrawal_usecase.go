package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/payout"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/metrics"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/withdrawal/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

type WithdrawalUsecase struct {
	tx      *repository.TxManager
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	payouts payout.Payouter
	lock    *store.IdempotencyLock
	stream  *store.RedisLedgerStream
}

func NewWithdrawalUsecase(
	tx *repository.TxManager,
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	payouts payout.Payouter,
	lock *store.IdempotencyLock,
	stream *store.RedisLedgerStream,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{tx: tx, players: players, ledger: ledger, payouts: payouts, lock: lock, stream: stream}
}

// Withdraw debits the player, asks the payment processor for a payout and
// re-credits the balance when the payout fails.
func (u *WithdrawalUsecase) Withdraw(ctx context.Context, playerID int64, idemKey string, in dto.WithdrawalInput) (out *dto.WithdrawalResult, err error) {
	defer func() { metrics.ObserveSettlement("withdrawal", err, out != nil && out.Replayed) }()

	if !model.ValidAmount(in.Amount) {
		return nil, errs.ErrInvalidAmount
	}
	amount := in.Amount

	var ref *string
	if idemKey != "" {
		scope := fmt.Sprintf("withdrawal:%d", playerID)
		owner := uuid.NewString()
		ok, err := u.lock.Acquire(ctx, scope, idemKey, owner)
		if err != nil {
			return nil, fmt.Errorf("acquire idempotency key: %w", err)
		}
		if !ok {
			return nil, errs.ErrRequestInProgress
		}
		defer func() {
			if err := u.lock.Release(context.WithoutCancel(ctx), scope, idemKey, owner); err != nil {
				logger.Warnf("⚠️ release idempotency key %s: %v", idemKey, err)
			}
		}()

		key := fmt.Sprintf("withdrawal:%d:%s", playerID, idemKey)
		ref = &key
		if prev, err := u.ledger.FindByReferenceKey(ctx, model.TransactionWithdrawal, key); err == nil {
			return u.replay(ctx, prev, amount)
		} else if !errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, err
		}
	}

	player, err := u.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if model.Currency(in.Currency) != player.Currency {
		return nil, fmt.Errorf("%w: currency %s does not match wallet currency %s", errs.ErrInvalidAmount, in.Currency, player.Currency)
	}

	// debit and pending entry commit together; an insufficient balance writes nothing
	var entry *model.Transaction
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		if _, err := u.players.WithTx(tx).Debit(ctx, player.ID, amount); err != nil {
			return err
		}
		entry = &model.Transaction{
			PlayerID:        player.ID,
			Amount:          amount.Neg(),
			Currency:        player.Currency,
			TransactionType: model.TransactionWithdrawal,
			Status:          model.StatusPending,
			ReferenceKey:    ref,
			Metadata:        datatypes.JSONMap{"payment_method_id": in.PaymentMethodID},
		}
		return u.ledger.WithTx(tx).Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	// the payout and its compensation must not be abandoned halfway by a client disconnect
	bg := context.WithoutCancel(ctx)

	res, payoutErr := u.payouts.Payout(bg, payout.Request{
		TransactionID:   entry.ID,
		PlayerID:        player.ID,
		Amount:          amount,
		Currency:        string(player.Currency),
		PaymentMethodID: in.PaymentMethodID,
	})
	if payoutErr != nil {
		return nil, u.compensate(bg, entry, amount, payoutErr)
	}

	ext := res.PayoutID
	done, err := u.ledger.MarkStatus(bg, entry.ID, repository.StatusUpdate{
		Status:            model.StatusCompleted,
		ExternalReference: &ext,
		Metadata:          map[string]any{"payout_status": res.Status},
	})
	if err != nil {
		// funds already left; the stale-pending sweep flags the entry for review
		errDetail := err.Error()
		logger.WriteLogToFile("failed", "WithdrawalUsecase.MarkCompleted", map[string]any{
			"transaction_id": entry.ID,
			"payout_id":      ext,
		}, &errDetail)
		logger.Errorf("❌ withdrawal %s paid out as %s but not marked completed: %v", entry.ID, ext, err)
		done = entry
	}
	u.publish(bg, done)

	bal, err := u.players.GetBalance(bg, player.ID)
	if err != nil {
		return nil, err
	}
	logger.Infof("✅ withdrawal %s player=%d amount=%s payout=%s", entry.ID, player.ID, amount, ext)
	return &dto.WithdrawalResult{
		Success:       true,
		NewBalance:    bal,
		TransactionID: entry.ID,
		Status:        string(done.Status),
	}, nil
}

// compensate restores the debited amount and marks the entry failed in one transaction.
func (u *WithdrawalUsecase) compensate(ctx context.Context, entry *model.Transaction, amount decimal.Decimal, cause error) error {
	metrics.PayoutCompensations.Inc()

	var failed *model.Transaction
	err := u.tx.Do(ctx, func(tx *gorm.DB) error {
		if _, err := u.players.WithTx(tx).ApplyDelta(ctx, entry.PlayerID, amount); err != nil {
			return err
		}
		update := repository.StatusUpdate{
			Status:   model.StatusFailed,
			Metadata: map[string]any{"failure_reason": cause.Error()},
		}
		var pf *payout.FailedError
		if errors.As(cause, &pf) {
			update.ExternalReference = &pf.PayoutID
		}
		var err error
		failed, err = u.ledger.WithTx(tx).MarkStatus(ctx, entry.ID, update)
		return err
	})
	if err != nil {
		errDetail := err.Error()
		logger.WriteLogToFile("failed", "WithdrawalUsecase.Compensate", map[string]any{
			"transaction_id": entry.ID,
			"player_id":      entry.PlayerID,
			"amount":         amount.String(),
			"payout_error":   cause.Error(),
		}, &errDetail)
		logger.Errorf("❌ withdrawal %s re-credit failed: %v", entry.ID, err)
		return fmt.Errorf("%w: %v (re-credit failed: %v)", errs.ErrExternalPayoutFailed, cause, err)
	}

	u.publish(ctx, failed)
	logger.Warnf("⚠️ withdrawal %s payout failed, %s re-credited to player %d: %v", entry.ID, amount, entry.PlayerID, cause)
	return fmt.Errorf("%w: %v", errs.ErrExternalPayoutFailed, cause)
}

func (u *WithdrawalUsecase) replay(ctx context.Context, prev *model.Transaction, amount decimal.Decimal) (*dto.WithdrawalResult, error) {
	if !prev.Amount.Neg().Equal(amount) {
		return nil, fmt.Errorf("%w: idempotency key already used for %s", errs.ErrDuplicateTransaction, prev.Amount.Neg())
	}
	bal, err := u.players.GetBalance(ctx, prev.PlayerID)
	if err != nil {
		return nil, err
	}
	return &dto.WithdrawalResult{
		Success:       prev.Status == model.StatusCompleted,
		NewBalance:    bal,
		TransactionID: prev.ID,
		Status:        string(prev.Status),
		Replayed:      true,
	}, nil
}

func (u *WithdrawalUsecase) publish(ctx context.Context, entry *model.Transaction) {
	if u.stream == nil || entry == nil {
		return
	}
	if err := u.stream.PublishAll(ctx, entry); err != nil {
		logger.Warnf("⚠️ ledger stream publish failed: %v", err)
	}
}
