package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/models"
)

// TransactionRepository implements ledger data operations.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new ledger row.
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	m := transactionToModel(tx)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a ledger row by id. Under a WithLock context the row stays
// locked until commit; that lock plus the status re-read is what turns
// at-least-once callbacks into exactly-once effects.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	db := GetDB(ctx, r.db)
	if err := withLocking(ctx, db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// GetByExternalRef gets a ledger row by its provider reference.
func (r *TransactionRepository) GetByExternalRef(ctx context.Context, ref string) (*entities.Transaction, error) {
	var m models.Transaction
	db := GetDB(ctx, r.db)
	if err := withLocking(ctx, db.WithContext(ctx)).Where("external_ref = ?", ref).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// Update persists the settle fields of a pending row. The WHERE clause
// re-checks status so a row that already left pending is left untouched and
// ok comes back false.
func (r *TransactionRepository) Update(ctx context.Context, tx *entities.Transaction) (bool, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND status = ?", tx.ID, string(entities.TransactionStatusPending)).
		Updates(map[string]interface{}{
			"status":         string(tx.Status),
			"balance_before": tx.BalanceBefore,
			"balance_after":  tx.BalanceAfter,
			"metadata":       tx.Metadata.Ptr(),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser returns reverse-chronological history with the total count.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Transaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		txs = append(txs, transactionToEntity(&ms[i]))
	}
	return txs, total, nil
}

// ListStalePending returns pending rows created before the cutoff, oldest
// first.
func (r *TransactionRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Transaction, error) {
	var ms []models.Transaction
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entities.TransactionStatusPending), cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	txs := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		txs = append(txs, transactionToEntity(&ms[i]))
	}
	return txs, nil
}

func transactionToModel(t *entities.Transaction) *models.Transaction {
	return &models.Transaction{
		ID:              t.ID,
		UserID:          t.UserID,
		WalletID:        t.WalletID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		BalanceBefore:   t.BalanceBefore,
		BalanceAfter:    t.BalanceAfter,
		Status:          string(t.Status),
		PaymentProvider: t.PaymentProvider.Ptr(),
		ExternalRef:     t.ExternalRef.Ptr(),
		Metadata:        t.Metadata.Ptr(),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func transactionToEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		WalletID:        m.WalletID,
		Type:            entities.TransactionType(m.Type),
		Amount:          m.Amount,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Status:          entities.TransactionStatus(m.Status),
		PaymentProvider: null.StringFromPtr(m.PaymentProvider),
		ExternalRef:     null.StringFromPtr(m.ExternalRef),
		Metadata:        null.StringFromPtr(m.Metadata),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
