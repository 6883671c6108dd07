package repositories

import (
	"context"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository reads the account rows owned by the account service. The
// monetary core only needs them for the withdrawal PIN check and payout
// phone number.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}
