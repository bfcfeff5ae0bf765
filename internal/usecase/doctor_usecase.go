package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrInvalidDoctorName = errors.New("invalid doctor name")
	ErrCascadeTooLarge   = errors.New("doctor has too many orders to delete at once")
	ErrDoctorOrdersBusy  = errors.New("doctor orders kept changing during delete")
)

// cascadeAttempts bounds how often Delete re-lists orders after a stale cascade.
const cascadeAttempts = 3

type DoctorInput struct {
	Name    string
	Clinic  string
	Phone   string
	Email   string
	Address string
}

// IDoctorUseCase manages the doctor directory.
//
// Delete removes the doctor together with every order of that doctor, atomically.
type IDoctorUseCase interface {
	Create(ctx context.Context, in DoctorInput) (entities.Doctor, error)
	GetByID(ctx context.Context, id string) (entities.Doctor, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]entities.Doctor, error)
	List(ctx context.Context) ([]entities.Doctor, error)
	Update(ctx context.Context, id string, in DoctorInput) (entities.Doctor, error)
	Delete(ctx context.Context, id string) (int, error)
	ListOrders(ctx context.Context, id string) ([]entities.Order, error)
}

type DoctorUseCase struct {
	repo      interfaces.IDoctorRepository
	orderRepo interfaces.IOrderRepository
	now       func() time.Time
}

var _ IDoctorUseCase = (*DoctorUseCase)(nil)

func NewDoctorUseCase(repo interfaces.IDoctorRepository, orderRepo interfaces.IOrderRepository) *DoctorUseCase {
	return &DoctorUseCase{repo: repo, orderRepo: orderRepo, now: time.Now}
}

func (u *DoctorUseCase) Create(ctx context.Context, in DoctorInput) (entities.Doctor, error) {
	in = trimDoctorInput(in)
	if in.Name == "" {
		return entities.Doctor{}, ErrInvalidDoctorName
	}

	now := u.now().UTC()
	return u.repo.Create(ctx, entities.Doctor{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Clinic:    in.Clinic,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (u *DoctorUseCase) GetByID(ctx context.Context, id string) (entities.Doctor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Doctor{}, ErrInvalidDoctorID
	}

	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Doctor{}, err
	}
	if d.ID == "" {
		return entities.Doctor{}, ErrDoctorNotFound
	}
	return d, nil
}

// GetByIDs is used to populate orders; ids without a doctor are simply missing.
func (u *DoctorUseCase) GetByIDs(ctx context.Context, ids []string) (map[string]entities.Doctor, error) {
	return u.repo.GetByIDs(ctx, ids)
}

// List returns doctors sorted by name, ignoring case and accents.
func (u *DoctorUseCase) List(ctx context.Context) ([]entities.Doctor, error) {
	doctors, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(doctors, func(i, j int) bool {
		return entities.NormalizeCategory(doctors[i].Name) < entities.NormalizeCategory(doctors[j].Name)
	})
	return doctors, nil
}

func (u *DoctorUseCase) Update(ctx context.Context, id string, in DoctorInput) (entities.Doctor, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Doctor{}, err
	}
	in = trimDoctorInput(in)
	if in.Name == "" {
		return entities.Doctor{}, ErrInvalidDoctorName
	}

	current.Name = in.Name
	current.Clinic = in.Clinic
	current.Phone = in.Phone
	current.Email = in.Email
	current.Address = in.Address
	current.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.Doctor{}, err
	}
	if updated.ID == "" {
		return entities.Doctor{}, ErrDoctorNotFound
	}
	return updated, nil
}

// Delete removes the doctor and its orders and returns how many orders went with it.
// Orders are listed with a consistent read and the cascade is retried when one of
// them moved in the meantime. Orders created between the listing and the commit are
// removed right after it; later creates fail because the doctor is gone.
func (u *DoctorUseCase) Delete(ctx context.Context, id string) (int, error) {
	d, err := u.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	logger := logging.FromContext(ctx)

	var orderIDs []string
	for attempt := 1; ; attempt++ {
		orderIDs, err = u.orderRepo.ListIDsByDoctorID(ctx, d.ID)
		if err != nil {
			return 0, err
		}

		deleted, err := u.repo.DeleteWithOrders(ctx, d.ID, orderIDs)
		if errors.Is(err, interfaces.ErrCascadeStale) {
			if attempt == cascadeAttempts {
				return 0, ErrDoctorOrdersBusy
			}
			logger.Warn("doctor orders changed during delete, retrying",
				slog.String("doctor_id", d.ID),
				slog.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			if errors.Is(err, interfaces.ErrCascadeTooLarge) {
				return 0, ErrCascadeTooLarge
			}
			return 0, err
		}
		if !deleted {
			return 0, ErrDoctorNotFound
		}
		break
	}

	late, err := u.deleteLateOrders(ctx, d.ID)
	if err != nil {
		logger.Error("doctor deleted but late orders remain",
			slog.String("doctor_id", d.ID),
			slog.String("error", err.Error()),
		)
	}

	logger.Info("doctor deleted",
		slog.String("doctor_id", d.ID),
		slog.Int("orders_deleted", len(orderIDs)+late),
	)
	return len(orderIDs) + late, nil
}

// deleteLateOrders removes orders that were created for the doctor after the cascade
// listed them but before it committed.
func (u *DoctorUseCase) deleteLateOrders(ctx context.Context, doctorID string) (int, error) {
	ids, err := u.orderRepo.ListIDsByDoctorID(ctx, doctorID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		deleted, err := u.orderRepo.Delete(ctx, id)
		if err != nil {
			return n, err
		}
		if deleted {
			n++
		}
	}
	if n > 0 {
		logging.FromContext(ctx).Warn("removed orders created during doctor delete",
			slog.String("doctor_id", doctorID),
			slog.Int("orders", n),
		)
	}
	return n, nil
}

func (u *DoctorUseCase) ListOrders(ctx context.Context, id string) ([]entities.Order, error) {
	d, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := u.orderRepo.ListByDoctorID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

func trimDoctorInput(in DoctorInput) DoctorInput {
	return DoctorInput{
		Name:    strings.TrimSpace(in.Name),
		Clinic:  strings.TrimSpace(in.Clinic),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Address: strings.TrimSpace(in.Address),
	}
}
