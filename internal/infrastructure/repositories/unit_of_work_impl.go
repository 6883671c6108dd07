package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainRepos "github.com/devbyteai/BetStack-sub001/internal/domain/repositories"
)

type contextKey string

const (
	txKey   contextKey = "tx_db"
	lockKey contextKey = "row_lock"
)

// UnitOfWorkImpl implements UnitOfWork using GORM transactions. Row locks
// taken inside a Do scope are held until commit, which is what makes the
// lock-reread-decide-mutate sequence atomic across service instances.
type UnitOfWorkImpl struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork.
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// commitTx is a seam for tests to force commit failures.
var commitTx = func(tx *gorm.DB) error {
	return tx.Commit().Error
}

// Do executes fn within a transaction scope. The transaction handle travels
// in the context so repositories pick it up transparently via GetDB.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := GetDB(ctx, u.db).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := commitTx(tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithLock marks the context so single-row reads acquire FOR UPDATE.
func (u *UnitOfWorkImpl) WithLock(ctx context.Context) context.Context {
	return context.WithValue(ctx, lockKey, true)
}

// GetDB extracts the transaction DB from the context if present, otherwise
// returns the fallback connection. Shared by every repository in this package.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// withLocking appends an exclusive row lock when the context was marked by
// WithLock. Only meaningful inside a Do scope.
func withLocking(ctx context.Context, db *gorm.DB) *gorm.DB {
	if locked, ok := ctx.Value(lockKey).(bool); ok && locked {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
