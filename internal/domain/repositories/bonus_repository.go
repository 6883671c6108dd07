package repositories

import (
	"context"
	"time"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/google/uuid"
)

// BonusRepository reads the bonus catalog and owns user bonus claims.
type BonusRepository interface {
	// GetBonus returns a catalog entry or ErrBonusNotFound. Under a WithLock
	// context the catalog row is locked, serializing concurrent claims of the
	// same bonus.
	GetBonus(ctx context.Context, id uuid.UUID) (*entities.Bonus, error)

	ListActiveBonuses(ctx context.Context) ([]*entities.Bonus, error)

	// GetClaim returns the newest claim for (userID, bonusID), or
	// ErrNotFound when the user never claimed it.
	GetClaim(ctx context.Context, userID, bonusID uuid.UUID) (*entities.UserBonus, error)

	GetUserBonusByID(ctx context.Context, id uuid.UUID) (*entities.UserBonus, error)

	// ListActiveByUser returns the user's active claims, for wagering accrual.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error)

	CreateClaim(ctx context.Context, claim *entities.UserBonus) error

	// UpdateClaim persists wagering progress and status transitions.
	UpdateClaim(ctx context.Context, claim *entities.UserBonus) error

	// ExpireOverdue flips active claims past their expiry to expired and
	// returns how many rows changed.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}
