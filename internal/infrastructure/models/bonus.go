package models

import (
	"time"

	"github.com/google/uuid"
)

// Bonus is the persistence model for a catalog promotion (read-only here).
type Bonus struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name               string    `gorm:"type:varchar(255);not null"`
	Amount             string    `gorm:"type:decimal(20,2);not null"`
	WageringMultiplier string    `gorm:"type:decimal(10,2);not null"`
	ExpiryDays         int       `gorm:"not null;default:30"`
	IsActive           bool      `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Bonus) TableName() string {
	return "bonuses"
}

// UserBonus is the persistence model for one bonus claim.
type UserBonus struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_user_bonus_user_bonus"`
	BonusID          uuid.UUID `gorm:"type:uuid;not null;index:idx_user_bonus_user_bonus"`
	Amount           string    `gorm:"type:decimal(20,2);not null"`
	WageredAmount    string    `gorm:"type:decimal(20,2);not null;default:0.00"`
	RequiredWagering string    `gorm:"type:decimal(20,2);not null"`
	Status           string    `gorm:"type:varchar(20);not null;index"`
	Released         bool      `gorm:"not null;default:false"`
	ExpiresAt        time.Time `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (UserBonus) TableName() string {
	return "user_bonuses"
}
