package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/domain/repositories"
	"github.com/devbyteai/BetStack-sub001/pkg/metrics"
	"github.com/devbyteai/BetStack-sub001/pkg/money"
)

// Stake funding sources.
const (
	StakeSourceMain  = "main"
	StakeSourceBonus = "bonus"
)

// WageringAccruer feeds settled stakes into the bonus wagering engine.
type WageringAccruer interface {
	AccrueWagering(ctx context.Context, userID uuid.UUID, stake string) error
}

// BettingUsecase is the settlement surface consumed by the betting engine.
// Every operation is a completed ledger row written under the wallet lock;
// the engine never touches wallet rows directly.
type BettingUsecase struct {
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	uow             repositories.UnitOfWork
	publisher       EventPublisher
	accruer         WageringAccruer
}

// NewBettingUsecase creates a new betting usecase.
func NewBettingUsecase(
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	publisher EventPublisher,
	accruer WageringAccruer,
) *BettingUsecase {
	return &BettingUsecase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		uow:             uow,
		publisher:       publisher,
		accruer:         accruer,
	}
}

// DebitStake takes a stake from the chosen balance and returns the ledger
// entry id. Wagering accrual is the caller's concern, via AccrueWagering.
func (u *BettingUsecase) DebitStake(ctx context.Context, userID uuid.UUID, amount, source string) (uuid.UUID, error) {
	amt, err := money.Parse(amount)
	if err != nil || !amt.IsPositive() {
		return uuid.Nil, domainerrors.ErrInvalidInput
	}
	if source != StakeSourceMain && source != StakeSourceBonus {
		return uuid.Nil, domainerrors.ErrInvalidInput
	}

	var entry *entities.Transaction
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		wallet, err := u.walletRepo.GetByUserID(lockCtx, userID)
		if err != nil {
			return err
		}

		var before string
		if source == StakeSourceBonus {
			before, _, err = debitBonusBalance(wallet, amt)
		} else {
			before, _, err = debitBalance(wallet, amt)
		}
		if err != nil {
			return err
		}
		if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
			return err
		}

		entry, err = newLedgerEntry(userID, wallet.ID, entities.TransactionTypeBet, amt.Neg(), before, entities.TransactionStatusCompleted)
		if err != nil {
			return err
		}
		entry.Metadata, err = mergeMetadata(entry.Metadata, map[string]interface{}{"source": source})
		if err != nil {
			return err
		}
		return u.transactionRepo.Create(txCtx, entry)
	})
	if err != nil {
		return uuid.Nil, err
	}

	metrics.RecordStake(source)
	if u.publisher != nil {
		u.publisher.PublishTransaction(ctx, entry, time.Now().Unix())
	}
	return entry.ID, nil
}

// CreditWin pays out a settled winning bet.
func (u *BettingUsecase) CreditWin(ctx context.Context, userID uuid.UUID, amount string) (uuid.UUID, error) {
	id, err := u.credit(ctx, userID, amount, entities.TransactionTypeWin)
	if err != nil {
		return uuid.Nil, err
	}
	metrics.RecordWin()
	return id, nil
}

// CreditCashout pays out an early cashout.
func (u *BettingUsecase) CreditCashout(ctx context.Context, userID uuid.UUID, amount string) (uuid.UUID, error) {
	return u.credit(ctx, userID, amount, entities.TransactionTypeCashout)
}

// AccrueWagering forwards a settled stake to the bonus wagering engine.
func (u *BettingUsecase) AccrueWagering(ctx context.Context, userID uuid.UUID, stake string) error {
	if u.accruer == nil {
		return nil
	}
	return u.accruer.AccrueWagering(ctx, userID, stake)
}

func (u *BettingUsecase) credit(ctx context.Context, userID uuid.UUID, amount string, txType entities.TransactionType) (uuid.UUID, error) {
	amt, err := money.Parse(amount)
	if err != nil || !amt.IsPositive() {
		return uuid.Nil, domainerrors.ErrInvalidInput
	}

	var entry *entities.Transaction
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		wallet, err := u.walletRepo.GetByUserID(lockCtx, userID)
		if err != nil {
			return err
		}
		before, _, err := creditBalance(wallet, amt)
		if err != nil {
			return err
		}
		if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
			return err
		}

		entry, err = newLedgerEntry(userID, wallet.ID, txType, amt, before, entities.TransactionStatusCompleted)
		if err != nil {
			return err
		}
		return u.transactionRepo.Create(txCtx, entry)
	})
	if err != nil {
		return uuid.Nil, err
	}

	if u.publisher != nil {
		u.publisher.PublishTransaction(ctx, entry, time.Now().Unix())
	}
	return entry.ID, nil
}
