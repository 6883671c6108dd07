package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/models"
)

// BonusRepository implements bonus catalog reads and user claim persistence.
type BonusRepository struct {
	db *gorm.DB
}

// NewBonusRepository creates a new bonus repository.
func NewBonusRepository(db *gorm.DB) *BonusRepository {
	return &BonusRepository{db: db}
}

// GetBonus gets a catalog entry. Under a WithLock context the catalog row is
// locked, which serializes concurrent claims of the same bonus.
func (r *BonusRepository) GetBonus(ctx context.Context, id uuid.UUID) (*entities.Bonus, error) {
	var m models.Bonus
	db := GetDB(ctx, r.db)
	if err := withLocking(ctx, db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBonusNotFound
		}
		return nil, err
	}
	return bonusToEntity(&m), nil
}

// ListActiveBonuses lists claimable catalog entries.
func (r *BonusRepository) ListActiveBonuses(ctx context.Context) ([]*entities.Bonus, error) {
	var ms []models.Bonus
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	bonuses := make([]*entities.Bonus, 0, len(ms))
	for i := range ms {
		bonuses = append(bonuses, bonusToEntity(&ms[i]))
	}
	return bonuses, nil
}

// GetClaim returns the newest claim for (user, bonus) or ErrNotFound.
func (r *BonusRepository) GetClaim(ctx context.Context, userID, bonusID uuid.UUID) (*entities.UserBonus, error) {
	var m models.UserBonus
	db := GetDB(ctx, r.db)
	err := withLocking(ctx, db.WithContext(ctx)).
		Where("user_id = ? AND bonus_id = ?", userID, bonusID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userBonusToEntity(&m), nil
}

// GetUserBonusByID gets one claim row.
func (r *BonusRepository) GetUserBonusByID(ctx context.Context, id uuid.UUID) (*entities.UserBonus, error) {
	var m models.UserBonus
	db := GetDB(ctx, r.db)
	if err := withLocking(ctx, db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userBonusToEntity(&m), nil
}

// ListActiveByUser lists the user's active claims for wagering accrual.
func (r *BonusRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error) {
	var ms []models.UserBonus
	db := GetDB(ctx, r.db)
	err := withLocking(ctx, db.WithContext(ctx)).
		Where("user_id = ? AND status = ?", userID, string(entities.UserBonusStatusActive)).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	claims := make([]*entities.UserBonus, 0, len(ms))
	for i := range ms {
		claims = append(claims, userBonusToEntity(&ms[i]))
	}
	return claims, nil
}

// ListByUser lists all claims for a user, newest first.
func (r *BonusRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UserBonus, error) {
	var ms []models.UserBonus
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	claims := make([]*entities.UserBonus, 0, len(ms))
	for i := range ms {
		claims = append(claims, userBonusToEntity(&ms[i]))
	}
	return claims, nil
}

// CreateClaim inserts a new claim row.
func (r *BonusRepository) CreateClaim(ctx context.Context, claim *entities.UserBonus) error {
	m := userBonusToModel(claim)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	claim.ID = m.ID
	return nil
}

// UpdateClaim persists wagering progress and status for a claim the caller
// holds locked.
func (r *BonusRepository) UpdateClaim(ctx context.Context, claim *entities.UserBonus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.UserBonus{}).
		Where("id = ?", claim.ID).
		Updates(map[string]interface{}{
			"wagered_amount": claim.WageredAmount,
			"status":         string(claim.Status),
			"released":       claim.Released,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ExpireOverdue flips active claims past their expiry to expired.
func (r *BonusRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.UserBonus{}).
		Where("status = ? AND expires_at < ?", string(entities.UserBonusStatusActive), now).
		Updates(map[string]interface{}{
			"status":     string(entities.UserBonusStatusExpired),
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func bonusToEntity(m *models.Bonus) *entities.Bonus {
	return &entities.Bonus{
		ID:                 m.ID,
		Name:               m.Name,
		Amount:             m.Amount,
		WageringMultiplier: m.WageringMultiplier,
		ExpiryDays:         m.ExpiryDays,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func userBonusToEntity(m *models.UserBonus) *entities.UserBonus {
	return &entities.UserBonus{
		ID:               m.ID,
		UserID:           m.UserID,
		BonusID:          m.BonusID,
		Amount:           m.Amount,
		WageredAmount:    m.WageredAmount,
		RequiredWagering: m.RequiredWagering,
		Status:           entities.UserBonusStatus(m.Status),
		Released:         m.Released,
		ExpiresAt:        m.ExpiresAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func userBonusToModel(e *entities.UserBonus) *models.UserBonus {
	return &models.UserBonus{
		ID:               e.ID,
		UserID:           e.UserID,
		BonusID:          e.BonusID,
		Amount:           e.Amount,
		WageredAmount:    e.WageredAmount,
		RequiredWagering: e.RequiredWagering,
		Status:           string(e.Status),
		Released:         e.Released,
		ExpiresAt:        e.ExpiresAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
