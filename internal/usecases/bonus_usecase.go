package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/domain/repositories"
	"github.com/devbyteai/BetStack-sub001/pkg/metrics"
	"github.com/devbyteai/BetStack-sub001/pkg/money"
)

// BonusUsecase runs the bonus claim and wagering state machine. Claims are
// serialized per catalog entry by locking the catalog row, so two concurrent
// claims of the same bonus cannot both pass the already-claimed check.
type BonusUsecase struct {
	bonusRepo       repositories.BonusRepository
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	uow             repositories.UnitOfWork
	publisher       EventPublisher
	currency        string
}

// NewBonusUsecase creates a new bonus usecase.
func NewBonusUsecase(
	bonusRepo repositories.BonusRepository,
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	publisher EventPublisher,
	currency string,
) *BonusUsecase {
	return &BonusUsecase{
		bonusRepo:       bonusRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		uow:             uow,
		publisher:       publisher,
		currency:        currency,
	}
}

// ListBonuses returns the claimable catalog.
func (u *BonusUsecase) ListBonuses(ctx context.Context) ([]*entities.Bonus, error) {
	return u.bonusRepo.ListActiveBonuses(ctx)
}

// ListUserBonuses returns all of the user's claims, newest first.
func (u *BonusUsecase) ListUserBonuses(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error) {
	return u.bonusRepo.ListByUser(ctx, userID)
}

// Claim grants a catalog bonus to the user: one active claim row, the grant
// credited to bonus balance, and a ledger entry, all in one transaction.
func (u *BonusUsecase) Claim(ctx context.Context, userID, bonusID uuid.UUID) (*entities.UserBonus, error) {
	// Make sure the wallet row exists before taking locks.
	if _, err := u.walletRepo.GetOrCreate(ctx, userID, u.currency); err != nil {
		return nil, err
	}

	var claim *entities.UserBonus
	var entry *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		bonus, err := u.bonusRepo.GetBonus(lockCtx, bonusID)
		if err != nil {
			return err
		}
		if !bonus.IsActive {
			return domainerrors.ErrBonusNotFound
		}

		prior, err := u.bonusRepo.GetClaim(lockCtx, userID, bonusID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		// Only a live or converted claim blocks; an expired or cancelled
		// claim frees the bonus for another run.
		if prior != nil && (prior.Status == entities.UserBonusStatusActive || prior.Status == entities.UserBonusStatusCompleted) {
			return domainerrors.ErrBonusAlreadyClaimed
		}

		amt, err := money.Parse(bonus.Amount)
		if err != nil {
			return err
		}
		mult, err := money.Parse(bonus.WageringMultiplier)
		if err != nil {
			return err
		}

		now := time.Now()
		claim = &entities.UserBonus{
			ID:               uuid.New(),
			UserID:           userID,
			BonusID:          bonusID,
			Amount:           amt.String(),
			WageredAmount:    money.Zero().String(),
			RequiredWagering: amt.Mul(mult).String(),
			Status:           entities.UserBonusStatusActive,
			ExpiresAt:        now.AddDate(0, 0, bonus.ExpiryDays),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := u.bonusRepo.CreateClaim(txCtx, claim); err != nil {
			return err
		}

		wallet, err := u.walletRepo.GetByUserID(lockCtx, userID)
		if err != nil {
			return err
		}
		before, _, err := creditBonusBalance(wallet, amt)
		if err != nil {
			return err
		}
		if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
			return err
		}

		entry, err = newLedgerEntry(userID, wallet.ID, entities.TransactionTypeBonus, amt, before, entities.TransactionStatusCompleted)
		if err != nil {
			return err
		}
		entry.Metadata, err = mergeMetadata(entry.Metadata, map[string]interface{}{
			"balance": "bonus",
			"bonusId": bonusID.String(),
		})
		if err != nil {
			return err
		}
		return u.transactionRepo.Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBonusClaim()
	if u.publisher != nil {
		u.publisher.PublishTransaction(ctx, entry, time.Now().Unix())
	}
	return claim, nil
}

// AccrueWagering credits the full stake against every active claim. A claim
// whose wagered amount reaches the requirement completes exactly once: the
// progress is clamped, the grant moves from bonus balance to main balance and
// a conversion ledger entry is written, all atomically.
func (u *BonusUsecase) AccrueWagering(ctx context.Context, userID uuid.UUID, stake string) error {
	amt, err := money.Parse(stake)
	if err != nil {
		return domainerrors.ErrInvalidInput
	}
	if !amt.IsPositive() {
		return nil
	}

	var entries []*entities.Transaction
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		claims, err := u.bonusRepo.ListActiveByUser(lockCtx, userID)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			return nil
		}

		var wallet *entities.Wallet
		walletDirty := false
		now := time.Now()

		for _, claim := range claims {
			if claim.ExpiresAt.Before(now) {
				continue // the expiry job owns this transition
			}

			wagered, err := money.Parse(claim.WageredAmount)
			if err != nil {
				return err
			}
			required, err := money.Parse(claim.RequiredWagering)
			if err != nil {
				return err
			}

			wagered = wagered.Add(amt)
			if wagered.LessThan(required) {
				claim.WageredAmount = wagered.String()
				if err := u.bonusRepo.UpdateClaim(txCtx, claim); err != nil {
					return err
				}
				continue
			}

			// Requirement met: clamp and convert.
			claim.WageredAmount = required.String()
			claim.Status = entities.UserBonusStatusCompleted

			if wallet == nil {
				wallet, err = u.walletRepo.GetByUserID(lockCtx, userID)
				if err != nil {
					return err
				}
			}

			entry, err := u.release(wallet, claim, &walletDirty)
			if err != nil {
				return err
			}
			if entry != nil {
				entries = append(entries, entry)
			}

			if err := u.bonusRepo.UpdateClaim(txCtx, claim); err != nil {
				return err
			}
			metrics.RecordBonusConversion()
		}

		if walletDirty {
			if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
				return err
			}
		}
		for _, entry := range entries {
			if err := u.transactionRepo.Create(txCtx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if u.publisher != nil {
		ts := time.Now().Unix()
		for _, entry := range entries {
			u.publisher.PublishTransaction(ctx, entry, ts)
		}
	}
	return nil
}

// Withdraw manually releases a completed claim whose grant is still sitting
// in bonus balance.
func (u *BonusUsecase) Withdraw(ctx context.Context, userID, userBonusID uuid.UUID) (*entities.Transaction, error) {
	var entry *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		claim, err := u.bonusRepo.GetUserBonusByID(lockCtx, userBonusID)
		if err != nil {
			return err
		}
		if claim.UserID != userID {
			return domainerrors.ErrNotFound
		}
		if claim.Released {
			return domainerrors.ErrBonusAlreadyWithdrawn
		}
		if claim.Status != entities.UserBonusStatusCompleted {
			return domainerrors.ErrBonusNotCompleted
		}

		wallet, err := u.walletRepo.GetByUserID(lockCtx, userID)
		if err != nil {
			return err
		}

		walletDirty := false
		entry, err = u.release(wallet, claim, &walletDirty)
		if err != nil {
			return err
		}
		if walletDirty {
			if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.Balance, wallet.BonusBalance); err != nil {
				return err
			}
		}
		if entry != nil {
			if err := u.transactionRepo.Create(txCtx, entry); err != nil {
				return err
			}
		}
		return u.bonusRepo.UpdateClaim(txCtx, claim)
	})
	if err != nil {
		return nil, err
	}

	if entry != nil && u.publisher != nil {
		u.publisher.PublishTransaction(ctx, entry, time.Now().Unix())
	}
	return entry, nil
}

// ExpireStale flips overdue active claims to expired. Funds already granted
// stay in bonus balance; only the wagering clock stops.
func (u *BonusUsecase) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	return u.bonusRepo.ExpireOverdue(ctx, now)
}

// release moves the grant (clamped to what is left in bonus balance) into
// main balance and marks the claim released. Returns the conversion ledger
// entry, or nil when nothing was left to move.
func (u *BonusUsecase) release(wallet *entities.Wallet, claim *entities.UserBonus, walletDirty *bool) (*entities.Transaction, error) {
	grant, err := money.Parse(claim.Amount)
	if err != nil {
		return nil, err
	}
	available, err := money.Parse(wallet.BonusBalance)
	if err != nil {
		return nil, err
	}

	move := grant
	if available.LessThan(move) {
		move = available
	}

	claim.Released = true
	if !move.IsPositive() {
		return nil, nil
	}

	mainBefore := wallet.Balance
	if err := moveBonusToMain(wallet, move); err != nil {
		return nil, err
	}
	*walletDirty = true

	entry, err := newLedgerEntry(claim.UserID, wallet.ID, entities.TransactionTypeBonusWithdrawal, move, mainBefore, entities.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}
	entry.Metadata, err = mergeMetadata(entry.Metadata, map[string]interface{}{
		"userBonusId": claim.ID.String(),
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
