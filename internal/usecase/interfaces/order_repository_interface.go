package interfaces

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_interface_mock.go -package=mock_interfaces

import (
	"context"
	"errors"

	"laboratorio_dental/internal/domain/entities"
)

var (
	// ErrOrderNumberTaken means the order number guard already exists.
	ErrOrderNumberTaken = errors.New("order number already taken")
	// ErrVersionConflict means the document changed since it was read.
	ErrVersionConflict = errors.New("document version conflict")
	// ErrDoctorMissing means the order's doctor was gone when the order was written.
	ErrDoctorMissing = errors.New("doctor does not exist")
)

// IOrderRepository abstracts DynamoDB persistence for Order documents.
//
// Lookups return a zero Order (empty ID) when nothing matches.
//   - Save replaces the document only if its stored version equals o.Version, then bumps it.
//   - AppendPayment / AppendNote are single atomic list appends.
//   - ListIDsByDoctorID reads the base table with strong consistency; ListByDoctorID
//     goes through an eventually consistent index.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	ListByDoctorID(ctx context.Context, doctorID string) ([]entities.Order, error)
	ListIDsByDoctorID(ctx context.Context, doctorID string) ([]string, error)
	ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
	ListOrderNumbers(ctx context.Context) ([]string, error)
	Save(ctx context.Context, o entities.Order) (entities.Order, error)
	AppendPayment(ctx context.Context, orderID string, p entities.Payment) (entities.Order, error)
	AppendNote(ctx context.Context, orderID string, n entities.Note) (entities.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}
