package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/models"
)

// UserRepository reads account rows owned by the account service.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID gets a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.User{
		ID:        m.ID,
		Email:     m.Email,
		Phone:     m.Phone,
		PinHash:   m.PinHash,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
