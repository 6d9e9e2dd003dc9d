package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/errs"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/repository"
	"github.com/rahulgarg55/casino-games-backend/internal/metrics"
	"github.com/rahulgarg55/casino-games-backend/internal/model"
	"github.com/rahulgarg55/casino-games-backend/internal/modules/wallet/dto"
	"github.com/rahulgarg55/casino-games-backend/internal/store"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

type WalletUsecase struct {
	tx      *repository.TxManager
	players *repository.PlayerRepository
	ledger  *repository.TransactionRepository
	stream  *store.RedisLedgerStream
}

func NewWalletUsecase(
	tx *repository.TxManager,
	players *repository.PlayerRepository,
	ledger *repository.TransactionRepository,
	stream *store.RedisLedgerStream,
) *WalletUsecase {
	return &WalletUsecase{tx: tx, players: players, ledger: ledger, stream: stream}
}

func (u *WalletUsecase) Balance(ctx context.Context, playerID int64) (*dto.BalanceOutput, error) {
	p, err := u.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceOutput{PlayerID: p.ID, Balance: p.Balance, Currency: string(p.Currency)}, nil
}

func (u *WalletUsecase) History(ctx context.Context, f repository.ListFilter) ([]model.Transaction, int64, error) {
	if _, err := u.players.GetByID(ctx, f.PlayerID); err != nil {
		return nil, 0, err
	}
	return u.ledger.ListByPlayer(ctx, f)
}

func topupKey(ref string) string       { return "topup:" + ref }
func failedTopupKey(ref string) string { return "topup:" + ref + ":failed" }

// HandlePaymentEvent applies a processor webhook. Every event type is idempotent
// on the processor's external reference.
func (u *WalletUsecase) HandlePaymentEvent(ctx context.Context, in dto.PaymentEventInput) (*dto.PaymentEventOutput, error) {
	in.Currency = strings.ToUpper(in.Currency)

	switch in.Type {
	case dto.EventPaymentSucceeded:
		return u.topup(ctx, in)
	case dto.EventPaymentFailed:
		return u.recordFailedTopup(ctx, in)
	case dto.EventPayoutFailed:
		return u.payoutFailed(ctx, in)
	}
	return nil, fmt.Errorf("unsupported event type %q", in.Type)
}

func (u *WalletUsecase) topup(ctx context.Context, in dto.PaymentEventInput) (*dto.PaymentEventOutput, error) {
	ref := topupKey(in.ExternalReference)
	if prev, err := u.ledger.FindByReferenceKey(ctx, model.TransactionTopup, ref); err == nil {
		return &dto.PaymentEventOutput{EventID: in.EventID, TransactionID: prev.ID}, nil
	} else if !errors.Is(err, errs.ErrTransactionNotFound) {
		return nil, err
	}

	player, err := u.checkPlayer(ctx, in)
	if err != nil {
		return nil, err
	}

	var (
		entry      *model.Transaction
		newBalance decimal.Decimal
	)
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		bal, err := u.players.WithTx(tx).ApplyDelta(ctx, player.ID, in.Amount)
		if err != nil {
			return err
		}
		newBalance = bal

		extRef := in.ExternalReference
		entry = &model.Transaction{
			PlayerID:          player.ID,
			Amount:            in.Amount,
			Currency:          player.Currency,
			TransactionType:   model.TransactionTopup,
			Status:            model.StatusCompleted,
			ExternalReference: &extRef,
			ReferenceKey:      &ref,
			Metadata:          datatypes.JSONMap{"event_id": in.EventID},
		}
		return u.ledger.WithTx(tx).Append(ctx, entry)
	})
	if errors.Is(err, errs.ErrDuplicateTransaction) {
		return &dto.PaymentEventOutput{EventID: in.EventID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("topup %s: %w", in.ExternalReference, err)
	}

	u.publish(ctx, entry)
	metrics.ObserveSettlement("topup", nil, false)
	logger.Infof("✅ topup %s player=%d amount=%s", in.ExternalReference, player.ID, in.Amount)
	return &dto.PaymentEventOutput{EventID: in.EventID, Applied: true, TransactionID: entry.ID, NewBalance: &newBalance}, nil
}

func (u *WalletUsecase) recordFailedTopup(ctx context.Context, in dto.PaymentEventInput) (*dto.PaymentEventOutput, error) {
	player, err := u.checkPlayer(ctx, in)
	if err != nil {
		return nil, err
	}

	ref := failedTopupKey(in.ExternalReference)
	extRef := in.ExternalReference
	entry := &model.Transaction{
		PlayerID:          player.ID,
		Amount:            in.Amount,
		Currency:          player.Currency,
		TransactionType:   model.TransactionTopup,
		Status:            model.StatusFailed,
		ExternalReference: &extRef,
		ReferenceKey:      &ref,
		Metadata:          datatypes.JSONMap{"event_id": in.EventID, "failure_reason": in.Reason},
	}
	if err := u.ledger.Append(ctx, entry); err != nil {
		if errors.Is(err, errs.ErrDuplicateTransaction) {
			return &dto.PaymentEventOutput{EventID: in.EventID}, nil
		}
		return nil, err
	}
	u.publish(ctx, entry)
	return &dto.PaymentEventOutput{EventID: in.EventID, Applied: true, TransactionID: entry.ID}, nil
}

// payoutFailed handles an asynchronous payout failure. A pending withdrawal is
// re-credited and failed; a completed one only gets flagged for review.
func (u *WalletUsecase) payoutFailed(ctx context.Context, in dto.PaymentEventInput) (*dto.PaymentEventOutput, error) {
	w, err := u.ledger.FindByExternalReference(ctx, model.TransactionWithdrawal, in.ExternalReference)
	if errors.Is(err, errs.ErrTransactionNotFound) {
		// payouts still pending only know our transaction id
		w, err = u.ledger.FindByID(ctx, in.ExternalReference)
		if err == nil && w.TransactionType != model.TransactionWithdrawal {
			err = errs.ErrTransactionNotFound
		}
	}
	if errors.Is(err, errs.ErrTransactionNotFound) {
		logger.Warnf("⚠️ payout.failed for unknown payout %s (event %s)", in.ExternalReference, in.EventID)
		return &dto.PaymentEventOutput{EventID: in.EventID}, nil
	}
	if err != nil {
		return nil, err
	}

	if !w.Editable() {
		payload := map[string]any{"transaction_id": w.ID, "status": w.Status, "event_id": in.EventID, "reason": in.Reason}
		detail := "payout failed after withdrawal was " + string(w.Status)
		logger.WriteLogToFile("review", "WalletUsecase.PayoutFailed", payload, &detail)
		logger.Warnf("⚠️ withdrawal %s is %s but payout %s failed; manual review required", w.ID, w.Status, in.ExternalReference)
		return &dto.PaymentEventOutput{EventID: in.EventID, TransactionID: w.ID}, nil
	}

	refund := w.Amount.Neg()
	var (
		failed     *model.Transaction
		newBalance decimal.Decimal
	)
	err = u.tx.Do(ctx, func(tx *gorm.DB) error {
		bal, err := u.players.WithTx(tx).ApplyDelta(ctx, w.PlayerID, refund)
		if err != nil {
			return err
		}
		newBalance = bal
		failed, err = u.ledger.WithTx(tx).MarkStatus(ctx, w.ID, repository.StatusUpdate{
			Status:   model.StatusFailed,
			Metadata: map[string]any{"failure_reason": in.Reason, "event_id": in.EventID},
		})
		return err
	})
	if errors.Is(err, errs.ErrTransactionNotEditable) {
		return &dto.PaymentEventOutput{EventID: in.EventID, TransactionID: w.ID}, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.PayoutCompensations.Inc()
	u.publish(ctx, failed)
	return &dto.PaymentEventOutput{EventID: in.EventID, Applied: true, TransactionID: w.ID, NewBalance: &newBalance}, nil
}

func (u *WalletUsecase) checkPlayer(ctx context.Context, in dto.PaymentEventInput) (*model.Player, error) {
	if !model.ValidAmount(in.Amount) {
		return nil, errs.ErrInvalidAmount
	}
	player, err := u.players.GetByID(ctx, in.PlayerID)
	if err != nil {
		return nil, err
	}
	if model.Currency(in.Currency) != player.Currency {
		return nil, fmt.Errorf("%w: currency %s does not match wallet currency %s", errs.ErrInvalidAmount, in.Currency, player.Currency)
	}
	return player, nil
}

func (u *WalletUsecase) publish(ctx context.Context, entry *model.Transaction) {
	if u.stream == nil || entry == nil {
		return
	}
	if err := u.stream.PublishAll(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warnf("⚠️ ledger stream publish failed: %v", err)
	}
}
