package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"
)

// IOrderNumberAllocator hands out order numbers of the form <PREFIX>-<YY>-<NNNN>.
type IOrderNumberAllocator interface {
	Next(ctx context.Context, category string, at time.Time) (string, error)
	SeedCounters(ctx context.Context) (int, error)
}

type OrderNumberAllocator struct {
	counter interfaces.ISequenceCounter
	orders  interfaces.IOrderRepository
}

var _ IOrderNumberAllocator = (*OrderNumberAllocator)(nil)

func NewOrderNumberAllocator(counter interfaces.ISequenceCounter, orders interfaces.IOrderRepository) *OrderNumberAllocator {
	return &OrderNumberAllocator{counter: counter, orders: orders}
}

// Next derives the prefix from category and takes the next value of the
// "<PREFIX>-<YY>" counter. Numbers are never reused, even if the order insert fails.
func (a *OrderNumberAllocator) Next(ctx context.Context, category string, at time.Time) (string, error) {
	key := entities.CounterKey(entities.PrefixForCategory(category), at)
	seq, err := a.counter.Next(ctx, key)
	if err != nil {
		return "", fmt.Errorf("allocate order number %s: %w", key, err)
	}
	return entities.FormatOrderNumber(key, seq), nil
}

// SeedCounters raises every counter to the highest sequence already used by a stored
// order. It returns how many counter keys were seen.
func (a *OrderNumberAllocator) SeedCounters(ctx context.Context) (int, error) {
	numbers, err := a.orders.ListOrderNumbers(ctx)
	if err != nil {
		return 0, err
	}

	highest := make(map[string]int64)
	for _, n := range numbers {
		key, seq, ok := entities.ParseOrderNumber(n)
		if !ok {
			continue
		}
		if seq > highest[key] {
			highest[key] = seq
		}
	}

	logger := logging.FromContext(ctx)
	for key, seq := range highest {
		if err := a.counter.SeedAtLeast(ctx, key, seq); err != nil {
			return 0, fmt.Errorf("seed counter %s: %w", key, err)
		}
		logger.Debug("order counter seeded", slog.String("key", key), slog.Int64("seq", seq))
	}
	return len(highest), nil
}
