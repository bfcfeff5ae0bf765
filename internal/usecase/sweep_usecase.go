package usecase

import (
	"context"
	"log/slog"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"
)

const (
	DefaultUnpaidGracePeriod = 7 * 24 * time.Hour
	DefaultPurgeRetention    = 365 * 24 * time.Hour
)

// ISweepUseCase holds the periodic maintenance jobs over completed orders.
//
// Both sweeps are idempotent: running them twice in a row changes nothing the
// second time.
type ISweepUseCase interface {
	CheckUnpaidOrders(ctx context.Context) (int, error)
	PurgeStaleOrders(ctx context.Context) (int, error)
}

type SweepUseCase struct {
	orders        interfaces.IOrderRepository
	notifications interfaces.INotificationRepository
	notifier      notifier
	grace         time.Duration
	retention     time.Duration
	now           func() time.Time
}

var _ ISweepUseCase = (*SweepUseCase)(nil)

func NewSweepUseCase(orders interfaces.IOrderRepository, notifications interfaces.INotificationRepository, grace, retention time.Duration) *SweepUseCase {
	if grace <= 0 {
		grace = DefaultUnpaidGracePeriod
	}
	if retention <= 0 {
		retention = DefaultPurgeRetention
	}
	return &SweepUseCase{
		orders:        orders,
		notifications: notifications,
		notifier:      notifier{repo: notifications, now: time.Now},
		grace:         grace,
		retention:     retention,
		now:           time.Now,
	}
}

// CheckUnpaidOrders notifies completed orders that still owe money after the grace
// period. Orders that already carry a pending-balance notification are skipped.
// It returns the number of notifications created.
func (u *SweepUseCase) CheckUnpaidOrders(ctx context.Context) (int, error) {
	logger := logging.FromContext(ctx)
	completed, err := u.orders.ListByStatus(ctx, entities.OrderStatusCompletado)
	if err != nil {
		return 0, err
	}

	now := u.now()
	created := 0
	for _, o := range completed {
		if o.Status != entities.OrderStatusCompletado || o.CompletionDate == nil {
			continue
		}
		if now.Sub(*o.CompletionDate) <= u.grace || !o.Balance().IsPositive() {
			continue
		}

		exists, err := u.notifications.ExistsForOrder(ctx, o.ID, PendingBalanceFragment)
		if err != nil {
			logger.Error("unpaid check lookup failed", slog.String("order_id", o.ID), slog.String("error", err.Error()))
			continue
		}
		if exists {
			continue
		}
		if err := u.notifier.send(ctx, o.ID, unpaidReminderMessage(o, u.grace)); err != nil {
			logger.Error("unpaid notification failed", slog.String("order_id", o.ID), slog.String("error", err.Error()))
			continue
		}
		created++
	}

	logger.Info("unpaid order check finished", slog.Int("candidates", len(completed)), slog.Int("notified", created))
	return created, nil
}

// PurgeStaleOrders hard-deletes completed orders whose completion date is older than
// the retention window. It returns the number of orders deleted.
func (u *SweepUseCase) PurgeStaleOrders(ctx context.Context) (int, error) {
	logger := logging.FromContext(ctx)
	completed, err := u.orders.ListByStatus(ctx, entities.OrderStatusCompletado)
	if err != nil {
		return 0, err
	}

	cutoff := u.now().Add(-u.retention)
	purged := 0
	for _, o := range completed {
		if o.Status != entities.OrderStatusCompletado || o.CompletionDate == nil {
			continue
		}
		if !o.CompletionDate.Before(cutoff) {
			continue
		}

		deleted, err := u.orders.Delete(ctx, o.ID)
		if err != nil {
			logger.Error("stale order purge failed", slog.String("order_id", o.ID), slog.String("error", err.Error()))
			continue
		}
		if deleted {
			purged++
		}
	}

	logger.Info("stale order purge finished", slog.Int("purged", purged))
	return purged, nil
}
