package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"
)

var (
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrInvalidNotificationID = errors.New("invalid notification id")
)

// INotificationUseCase is the read side of the notification sink. Notifications are
// only created by the ledger and the unpaid sweep.
type INotificationUseCase interface {
	List(ctx context.Context, unreadOnly bool) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id string) (entities.Notification, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int, error)
}

type NotificationUseCase struct {
	repo interfaces.INotificationRepository
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

func NewNotificationUseCase(repo interfaces.INotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

func (u *NotificationUseCase) List(ctx context.Context, unreadOnly bool) ([]entities.Notification, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if !unreadOnly {
		return all, nil
	}

	unread := make([]entities.Notification, 0, len(all))
	for _, n := range all {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

func (u *NotificationUseCase) MarkRead(ctx context.Context, id string) (entities.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Notification{}, ErrInvalidNotificationID
	}

	n, err := u.repo.MarkRead(ctx, id)
	if err != nil {
		return entities.Notification{}, err
	}
	if n.ID == "" {
		return entities.Notification{}, ErrNotificationNotFound
	}
	return n, nil
}

func (u *NotificationUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidNotificationID
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *NotificationUseCase) Clear(ctx context.Context) (int, error) {
	n, err := u.repo.DeleteAll(ctx)
	if err != nil {
		return n, err
	}
	logging.FromContext(ctx).Info("notifications cleared", slog.Int("count", n))
	return n, nil
}
