package repositories

import (
	"context"
	"time"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/google/uuid"
)

// TransactionRepository persists the ledger. Rows are append-mostly: Create
// inserts, Update touches only the status/snapshot/metadata fields of a row
// the caller holds locked, and nothing ever deletes.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error

	// GetByID returns the row or ErrTransactionNotFound. Under a WithLock
	// context this is the idempotency checkpoint for callbacks.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)

	GetByExternalRef(ctx context.Context, ref string) (*entities.Transaction, error)

	// Update persists status, balance snapshots and metadata. The WHERE clause
	// re-checks status = pending, so a concurrent settle loses cleanly: ok is
	// false when the row already left pending.
	Update(ctx context.Context, tx *entities.Transaction) (ok bool, err error)

	// ListByUser returns reverse-chronological history plus the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int64, error)

	// ListStalePending returns pending rows created before the cutoff, oldest
	// first, for the expiry job.
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Transaction, error)
}
