package interfaces

//go:generate mockgen -source=notification_repository_interface.go -destination=mocks/notification_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"laboratorio_dental/internal/domain/entities"
)

// INotificationRepository abstracts DynamoDB persistence for Notification.
//
// ExistsForOrder matches on message text: it reports whether any notification of the
// order contains fragment.
type INotificationRepository interface {
	Create(ctx context.Context, n entities.Notification) (entities.Notification, error)
	List(ctx context.Context) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id string) (entities.Notification, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
	ExistsForOrder(ctx context.Context, orderID, fragment string) (bool, error)
}
