package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the persistence model for a ledger row. ExternalRef is the
// provider-assigned reference, unique per attempt.
type Transaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	WalletID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Type            string    `gorm:"type:varchar(20);not null;index"`
	Amount          string    `gorm:"type:decimal(20,2);not null"`
	BalanceBefore   string    `gorm:"type:decimal(20,2);not null"`
	BalanceAfter    string    `gorm:"type:decimal(20,2);not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	PaymentProvider *string   `gorm:"type:varchar(50)"`
	ExternalRef     *string   `gorm:"type:varchar(100);uniqueIndex"`
	Metadata        *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (Transaction) TableName() string {
	return "transactions"
}
