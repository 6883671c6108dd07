package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/domain/repositories"
	"github.com/devbyteai/BetStack-sub001/pkg/logger"
	"github.com/devbyteai/BetStack-sub001/pkg/metrics"
	"github.com/devbyteai/BetStack-sub001/pkg/money"
)

const (
	CallbackStatusSuccess = "success"
	CallbackStatusFailed  = "failed"
)

// CallbackPayload is the provider's asynchronous settlement notification.
// Either TransactionID or ExternalRef identifies the pending row.
type CallbackPayload struct {
	TransactionID uuid.UUID              `json:"transactionId"`
	ExternalRef   string                 `json:"externalRef"`
	Status        string                 `json:"status"`
	Amount        string                 `json:"amount"`
	Provider      string                 `json:"provider"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// CallbackUsecase settles pending deposits and withdrawals from provider
// callbacks. Processing is idempotent: the transaction row is locked, its
// status re-read, and anything that already left pending is a no-op. Lock
// order is always transaction row first, wallet row second.
type CallbackUsecase struct {
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	uow             repositories.UnitOfWork
	publisher       EventPublisher
}

// NewCallbackUsecase creates a new callback usecase.
func NewCallbackUsecase(
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	publisher EventPublisher,
) *CallbackUsecase {
	return &CallbackUsecase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		uow:             uow,
		publisher:       publisher,
	}
}

// Process applies one provider callback.
func (u *CallbackUsecase) Process(ctx context.Context, payload *CallbackPayload) error {
	if payload.Status != CallbackStatusSuccess && payload.Status != CallbackStatusFailed {
		return domainerrors.ErrInvalidInput
	}

	var settled *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		tx, err := u.resolve(lockCtx, payload)
		if err != nil {
			return err
		}

		// Replay or late callback: the row already settled.
		if tx.Status != entities.TransactionStatusPending {
			metrics.RecordCallbackReplay()
			logger.Info(txCtx, "callback replay ignored",
				zap.String("transaction_id", tx.ID.String()),
				zap.String("status", string(tx.Status)))
			return nil
		}

		switch {
		case tx.Type == entities.TransactionTypeDeposit && payload.Status == CallbackStatusSuccess:
			if err := u.settleDepositSuccess(lockCtx, txCtx, tx); err != nil {
				return err
			}
		case tx.Type == entities.TransactionTypeWithdrawal && payload.Status == CallbackStatusFailed:
			if err := u.refundWithdrawal(lockCtx, txCtx, tx); err != nil {
				return err
			}
		case payload.Status == CallbackStatusSuccess:
			tx.Status = entities.TransactionStatusCompleted
		default:
			tx.Status = entities.TransactionStatusFailed
		}

		tx.Metadata, err = mergeMetadata(tx.Metadata, payload.Metadata)
		if err != nil {
			return err
		}

		ok, err := u.transactionRepo.Update(txCtx, tx)
		if err != nil {
			return err
		}
		if ok {
			settled = tx
		}
		return nil
	})
	if err != nil {
		return err
	}

	if settled != nil {
		metrics.RecordCallback(string(settled.Type), payload.Status)
		if u.publisher != nil {
			u.publisher.PublishTransaction(ctx, settled, time.Now().Unix())
		}
	}
	return nil
}

// resolve finds the pending row by id or external reference, under lock.
func (u *CallbackUsecase) resolve(lockCtx context.Context, payload *CallbackPayload) (*entities.Transaction, error) {
	if payload.TransactionID != uuid.Nil {
		return u.transactionRepo.GetByID(lockCtx, payload.TransactionID)
	}
	if payload.ExternalRef != "" {
		return u.transactionRepo.GetByExternalRef(lockCtx, payload.ExternalRef)
	}
	return nil, domainerrors.ErrInvalidInput
}

// settleDepositSuccess credits the wallet and fixes the row's balance
// snapshot to the actual movement.
func (u *CallbackUsecase) settleDepositSuccess(lockCtx, txCtx context.Context, tx *entities.Transaction) error {
	wallet, err := u.walletRepo.GetByUserID(lockCtx, tx.UserID)
	if err != nil {
		return err
	}
	amt, err := money.Parse(tx.Amount)
	if err != nil {
		return err
	}
	before, after, err := creditBalance(wallet, amt)
	if err != nil {
		return err
	}
	if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
		return err
	}

	tx.BalanceBefore = before
	tx.BalanceAfter = after
	tx.Status = entities.TransactionStatusCompleted
	return nil
}

// refundWithdrawal returns the eager debit after a failed payout.
func (u *CallbackUsecase) refundWithdrawal(lockCtx, txCtx context.Context, tx *entities.Transaction) error {
	wallet, err := u.walletRepo.GetByUserID(lockCtx, tx.UserID)
	if err != nil {
		return err
	}
	amt, err := money.Parse(tx.Amount)
	if err != nil {
		return err
	}
	if _, _, err := creditBalance(wallet, amt.Abs()); err != nil {
		return err
	}
	if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
		return err
	}

	tx.Status = entities.TransactionStatusFailed
	return nil
}
