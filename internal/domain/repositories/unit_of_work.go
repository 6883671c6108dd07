package repositories

import (
	"context"
)

// UnitOfWork executes a function inside one database transaction. Every
// balance mutation and its paired ledger insert must share a single Do scope
// so partial writes are never observable.
type UnitOfWork interface {
	// Do runs fn within a transaction; fn's context carries the transaction
	// and must be passed to every repository call inside the scope.
	Do(ctx context.Context, fn func(ctx context.Context) error) error

	// WithLock marks the context so subsequent single-row reads acquire an
	// exclusive row lock (SELECT ... FOR UPDATE) held until commit.
	WithLock(ctx context.Context) context.Context
}
