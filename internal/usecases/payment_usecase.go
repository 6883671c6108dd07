package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/domain/repositories"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/providers"
	"github.com/devbyteai/BetStack-sub001/pkg/crypto"
	"github.com/devbyteai/BetStack-sub001/pkg/logger"
	"github.com/devbyteai/BetStack-sub001/pkg/metrics"
	"github.com/devbyteai/BetStack-sub001/pkg/money"
)

// ProviderGateway resolves dispatch clients per payment provider.
type ProviderGateway interface {
	GetClient(provider string) (providers.Client, error)
}

// EventPublisher emits ledger events downstream. Best effort.
type EventPublisher interface {
	PublishTransaction(ctx context.Context, tx *entities.Transaction, timestamp int64)
}

// PaymentUsecase orchestrates the deposit and withdrawal lifecycle. Money
// only moves when the provider confirms via callback; the exception is the
// withdrawal eager debit, which reserves funds up front.
type PaymentUsecase struct {
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	userRepo        repositories.UserRepository
	uow             repositories.UnitOfWork
	gateway         ProviderGateway
	publisher       EventPublisher
	minWithdrawal   money.Amount
	currency        string
}

// NewPaymentUsecase creates a new payment usecase.
func NewPaymentUsecase(
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	gateway ProviderGateway,
	publisher EventPublisher,
	minWithdrawal string,
	currency string,
) *PaymentUsecase {
	return &PaymentUsecase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		uow:             uow,
		gateway:         gateway,
		publisher:       publisher,
		minWithdrawal:   money.MustParse(minWithdrawal),
		currency:        currency,
	}
}

// Deposit creates a pending deposit and asks the provider to collect the
// funds. The wallet is not touched; the callback settles the row.
func (u *PaymentUsecase) Deposit(ctx context.Context, userID uuid.UUID, amount, provider, phone string) (*entities.Transaction, error) {
	amt, err := money.Parse(amount)
	if err != nil || !amt.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}
	if provider == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	wallet, err := u.walletRepo.GetOrCreate(ctx, userID, u.currency)
	if err != nil {
		return nil, err
	}

	ref, err := crypto.GenerateReference(16)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &entities.Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		WalletID: wallet.ID,
		Type:     entities.TransactionTypeDeposit,
		Amount:   amt.String(),
		// No funds moved yet; the callback fixes balance_after on success.
		BalanceBefore:   wallet.Balance,
		BalanceAfter:    wallet.Balance,
		Status:          entities.TransactionStatusPending,
		PaymentProvider: null.StringFrom(provider),
		ExternalRef:     null.StringFrom(ref),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	metrics.RecordDeposit(provider)
	u.dispatch(ctx, tx, phone, false)

	return tx, nil
}

// Withdraw verifies the punter's PIN, debits the wallet eagerly and creates
// a pending withdrawal dispatched to the provider for payout.
func (u *PaymentUsecase) Withdraw(ctx context.Context, userID uuid.UUID, amount, provider, phone, pin string) (*entities.Transaction, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !crypto.CheckPin(pin, user.PinHash) {
		return nil, domainerrors.ErrInvalidCredential
	}

	amt, err := money.Parse(amount)
	if err != nil || !amt.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}
	if provider == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if amt.LessThan(u.minWithdrawal) {
		return nil, domainerrors.ErrBelowMinimumAmount
	}

	ref, err := crypto.GenerateReference(16)
	if err != nil {
		return nil, err
	}

	var tx *entities.Transaction
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		wallet, err := u.walletRepo.GetByUserID(lockCtx, userID)
		if err != nil {
			return err
		}

		// Eager debit reserves the funds while the payout is in flight.
		before, after, err := debitBalance(wallet, amt)
		if err != nil {
			return err
		}
		if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
			return err
		}

		now := time.Now()
		tx = &entities.Transaction{
			ID:              uuid.New(),
			UserID:          userID,
			WalletID:        wallet.ID,
			Type:            entities.TransactionTypeWithdrawal,
			Amount:          amt.Neg().String(),
			BalanceBefore:   before,
			BalanceAfter:    after,
			Status:          entities.TransactionStatusPending,
			PaymentProvider: null.StringFrom(provider),
			ExternalRef:     null.StringFrom(ref),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return u.transactionRepo.Create(txCtx, tx)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawal(provider)
	u.dispatch(ctx, tx, phone, true)

	return tx, nil
}

// Cancel transitions a pending transaction to cancelled. Pending withdrawals
// get their eager debit refunded. Terminal rows are a silent no-op.
func (u *PaymentUsecase) Cancel(ctx context.Context, txID uuid.UUID, reason string) error {
	var settled *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		tx, err := u.transactionRepo.GetByID(lockCtx, txID)
		if err != nil {
			return err
		}
		if tx.Status != entities.TransactionStatusPending {
			return nil
		}

		if tx.Type == entities.TransactionTypeWithdrawal {
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
		}

		tx.Status = entities.TransactionStatusCancelled
		tx.Metadata, err = mergeMetadata(tx.Metadata, map[string]interface{}{"cancelReason": reason})
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

	if settled != nil && u.publisher != nil {
		u.publisher.PublishTransaction(ctx, settled, time.Now().Unix())
	}
	return nil
}

// dispatch forwards the request to the provider. Dispatch failure does not
// roll back the pending row; the expiry job reaps requests that never get a
// callback.
func (u *PaymentUsecase) dispatch(ctx context.Context, tx *entities.Transaction, phone string, payout bool) {
	client, err := u.gateway.GetClient(tx.PaymentProvider.String)
	if err != nil {
		logger.Warn(ctx, "provider client unavailable",
			zap.String("provider", tx.PaymentProvider.String), zap.Error(err))
		return
	}

	amt := money.MustParse(tx.Amount).Abs()
	req := &providers.PaymentRequest{
		Reference: tx.ExternalRef.String,
		Phone:     phone,
		Amount:    amt.String(),
		Currency:  u.currency,
	}

	if payout {
		_, err = client.RequestPayout(ctx, req)
	} else {
		_, err = client.RequestCollection(ctx, req)
	}
	if err != nil {
		logger.Warn(ctx, "provider dispatch failed",
			zap.String("transaction_id", tx.ID.String()),
			zap.String("provider", tx.PaymentProvider.String), zap.Error(err))
	}
}
