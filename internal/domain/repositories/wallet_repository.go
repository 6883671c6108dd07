package repositories

import (
	"context"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/google/uuid"
)

// WalletRepository is the single source of truth for a user's balances.
// Mutations must run inside a UnitOfWork scope with the wallet row read under
// WithLock; display reads need no lock.
type WalletRepository interface {
	// GetByUserID returns the wallet or ErrWalletNotFound.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)

	// GetOrCreate returns the wallet, creating it with zero balances on first
	// access.
	GetOrCreate(ctx context.Context, userID uuid.UUID, currency string) (*entities.Wallet, error)

	// UpdateBalances persists both balance columns. Callers compute the new
	// values under the row lock and pair every call with exactly one ledger
	// insert in the same transaction.
	UpdateBalances(ctx context.Context, id uuid.UUID, balance, bonusBalance string) error
}
