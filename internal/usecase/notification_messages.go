package usecase

import (
	"context"
	"log/slog"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PendingBalanceFragment appears in every pending-balance message. The unpaid sweep
// uses it to detect that an order was already notified.
const PendingBalanceFragment = "saldo pendiente"

var printer = message.NewPrinter(language.Spanish)

func formatAmount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.InexactFloat64())
}

func completedWithBalanceMessage(o entities.Order) string {
	return printer.Sprintf("La orden %s fue completada con un "+PendingBalanceFragment+" de $%s", o.OrderNumber, formatAmount(o.Balance()))
}

func unpaidReminderMessage(o entities.Order, grace time.Duration) string {
	days := int(grace.Hours() / 24)
	return printer.Sprintf("La orden %s tiene un "+PendingBalanceFragment+" de $%s desde hace más de %d días", o.OrderNumber, formatAmount(o.Balance()), days)
}

func fullyPaidMessage(o entities.Order) string {
	return printer.Sprintf("La orden %s ha sido pagada en su totalidad", o.OrderNumber)
}

// notifier writes derived notifications. Failures never reach the caller of the
// operation that triggered them.
type notifier struct {
	repo interfaces.INotificationRepository
	now  func() time.Time
}

func (n notifier) send(ctx context.Context, orderID, msg string) error {
	_, err := n.repo.Create(ctx, entities.Notification{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Message:   msg,
		CreatedAt: n.now().UTC(),
	})
	return err
}

// bestEffort sends msg and logs a failure instead of returning it.
func (n notifier) bestEffort(ctx context.Context, orderID, msg string) {
	if n.repo == nil {
		return
	}
	if err := n.send(ctx, orderID, msg); err != nil {
		logging.FromContext(ctx).Warn("notification not created",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}
}
