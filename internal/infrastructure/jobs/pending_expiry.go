package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/devbyteai/BetStack-sub001/pkg/logger"
)

const expiryBatchSize = 100

type stalePendingLister interface {
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Transaction, error)
}

type transactionCanceller interface {
	Cancel(ctx context.Context, txID uuid.UUID, reason string) error
}

type bonusExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// PendingExpiryJob reaps transactions whose provider never answered. Stale
// pending deposits are cancelled; stale pending withdrawals are cancelled and
// refunded through the same path. It also flips overdue active bonus claims
// to expired.
type PendingExpiryJob struct {
	transactions stalePendingLister
	payments     transactionCanceller
	bonuses      bonusExpirer
	window       time.Duration
	interval     time.Duration
	stop         chan struct{}
}

func NewPendingExpiryJob(
	transactions stalePendingLister,
	payments transactionCanceller,
	bonuses bonusExpirer,
	window time.Duration,
	interval time.Duration,
) *PendingExpiryJob {
	return &PendingExpiryJob{
		transactions: transactions,
		payments:     payments,
		bonuses:      bonuses,
		window:       window,
		interval:     interval,
		stop:         make(chan struct{}),
	}
}

func (j *PendingExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "pending expiry job started",
		zap.Duration("window", j.window),
		zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "pending expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "pending expiry job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx, time.Now())
		}
	}
}

func (j *PendingExpiryJob) Stop() {
	close(j.stop)
}

func (j *PendingExpiryJob) runOnce(ctx context.Context, now time.Time) {
	j.processStalePending(ctx, now)
	j.processOverdueBonuses(ctx, now)
}

func (j *PendingExpiryJob) processStalePending(ctx context.Context, now time.Time) {
	cutoff := now.Add(-j.window)

	stale, err := j.transactions.ListStalePending(ctx, cutoff, expiryBatchSize)
	if err != nil {
		logger.Error(ctx, "listing stale pending transactions failed", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	cancelled := 0
	for _, tx := range stale {
		// Cancel locks the row and re-checks pending, so a callback that
		// lands between list and cancel wins and this becomes a no-op.
		if err := j.payments.Cancel(ctx, tx.ID, "expired"); err != nil {
			logger.Error(ctx, "cancelling stale transaction failed",
				zap.String("transactionId", tx.ID.String()),
				zap.Error(err))
			continue
		}
		cancelled++
	}

	logger.Info(ctx, "cancelled stale pending transactions",
		zap.Int("listed", len(stale)),
		zap.Int("cancelled", cancelled))
}

func (j *PendingExpiryJob) processOverdueBonuses(ctx context.Context, now time.Time) {
	expired, err := j.bonuses.ExpireStale(ctx, now)
	if err != nil {
		logger.Error(ctx, "expiring overdue bonus claims failed", zap.Error(err))
		return
	}
	if expired > 0 {
		logger.Info(ctx, "expired overdue bonus claims", zap.Int64("count", expired))
	}
}
