package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's custodial balances. One row per user, created lazily
// on first access and never deleted. Balance and BonusBalance are fixed
// 2-decimal strings; both stay >= 0 at all times (a debit that would go
// negative is rejected before the row is written).
type Wallet struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Balance      string    `json:"balance"`
	BonusBalance string    `json:"bonusBalance"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
