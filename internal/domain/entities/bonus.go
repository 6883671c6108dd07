package entities

import (
	"time"

	"github.com/google/uuid"
)

// Bonus is a catalog entry describing a claimable promotion. The catalog is
// managed elsewhere; this service only reads it.
type Bonus struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Amount             string    `json:"amount"`
	WageringMultiplier string    `json:"wageringMultiplier"`
	ExpiryDays         int       `json:"expiryDays"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// UserBonusStatus is the lifecycle state of a claimed bonus.
type UserBonusStatus string

const (
	UserBonusStatusActive    UserBonusStatus = "active"
	UserBonusStatusCompleted UserBonusStatus = "completed"
	UserBonusStatusExpired   UserBonusStatus = "expired"
	UserBonusStatusCancelled UserBonusStatus = "cancelled"
)

// UserBonus is one claim of a catalog bonus. WageredAmount only grows while
// the claim is active; once it reaches RequiredWagering the claim completes
// exactly once and the grant moves from bonus balance to main balance.
type UserBonus struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	BonusID          uuid.UUID       `json:"bonusId"`
	Amount           string          `json:"amount"`
	WageredAmount    string          `json:"wageredAmount"`
	RequiredWagering string          `json:"requiredWagering"`
	Status           UserBonusStatus `json:"status"`
	Released         bool            `json:"released"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}
