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

const zeroAmount = "0.00"

// WalletRepository implements wallet data operations.
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository.
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByUserID gets a wallet by user id. Under a WithLock context the row is
// read FOR UPDATE and stays locked until the surrounding transaction commits.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db)
	if err := withLocking(ctx, db.WithContext(ctx)).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrWalletNotFound
		}
		return nil, err
	}
	return walletToEntity(&m), nil
}

// GetOrCreate returns the wallet, lazily creating it with zero balances.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, currency string) (*entities.Wallet, error) {
	w, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domainerrors.ErrWalletNotFound) {
		return nil, err
	}

	m := &models.Wallet{
		ID:           uuid.New(),
		UserID:       userID,
		Balance:      zeroAmount,
		BonusBalance: zeroAmount,
		Currency:     currency,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		// A concurrent first access may have won the insert on the unique
		// user_id index; fall back to reading that row.
		if w, getErr := r.GetByUserID(ctx, userID); getErr == nil {
			return w, nil
		}
		return nil, err
	}
	return walletToEntity(m), nil
}

// UpdateBalances persists both balance columns for a wallet the caller holds
// locked.
func (r *WalletRepository) UpdateBalances(ctx context.Context, id uuid.UUID, balance, bonusBalance string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":       balance,
			"bonus_balance": bonusBalance,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWalletNotFound
	}
	return nil
}

func walletToEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:           m.ID,
		UserID:       m.UserID,
		Balance:      m.Balance,
		BonusBalance: m.BonusBalance,
		Currency:     m.Currency,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
