package interfaces

//go:generate mockgen -source=doctor_repository_interface.go -destination=mocks/doctor_repository_interface_mock.go -package=mock_interfaces

import (
	"context"
	"errors"

	"laboratorio_dental/internal/domain/entities"
)

var (
	// ErrCascadeTooLarge means the doctor and its orders do not fit in one transaction.
	ErrCascadeTooLarge = errors.New("cascade delete exceeds transaction limit")
	// ErrCascadeStale means one of the orders was removed or reassigned after it was listed.
	ErrCascadeStale = errors.New("cascade order set changed")
)

// IDoctorRepository abstracts DynamoDB persistence for Doctor.
//
// DeleteWithOrders removes the doctor and the given orders in one transaction:
// either every item is deleted or none is. Each order is only deleted while it still
// belongs to the doctor. It reports false when the doctor does not exist.
type IDoctorRepository interface {
	Create(ctx context.Context, d entities.Doctor) (entities.Doctor, error)
	GetByID(ctx context.Context, id string) (entities.Doctor, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]entities.Doctor, error)
	List(ctx context.Context) ([]entities.Doctor, error)
	Update(ctx context.Context, d entities.Doctor) (entities.Doctor, error)
	DeleteWithOrders(ctx context.Context, doctorID string, orderIDs []string) (bool, error)
}
