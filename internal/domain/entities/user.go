package entities

import (
	"time"

	"github.com/google/uuid"
)

// User carries the minimum account data the monetary core needs: identity,
// the payout phone number and the withdrawal PIN hash. Account management
// itself lives in another service.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	PinHash   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
