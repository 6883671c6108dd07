package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is the persistence model for a user's balances. Monetary columns are
// fixed 2-decimal values, never native floating point.
type Wallet struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Balance      string    `gorm:"type:decimal(20,2);not null;default:0.00"`
	BonusBalance string    `gorm:"type:decimal(20,2);not null;default:0.00"`
	Currency     string    `gorm:"type:varchar(10);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Wallet) TableName() string {
	return "wallets"
}
