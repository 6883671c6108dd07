package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the account-service table; this service reads it only.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex"`
	Phone     string    `gorm:"type:varchar(30)"`
	PinHash   string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
