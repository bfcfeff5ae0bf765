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
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderID      = errors.New("invalid order id")
	ErrInvalidDoctorID     = errors.New("invalid doctor_id")
	ErrUnknownDoctor       = errors.New("doctor_id does not reference an existing doctor")
	ErrInvalidPatientName  = errors.New("invalid patient_name")
	ErrInvalidJobItems     = errors.New("invalid job_items")
	ErrInvalidCost         = errors.New("order cost must be greater than zero")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrOrderNumberConflict = errors.New("order number already in use")
	ErrConcurrentUpdate    = errors.New("order was modified concurrently")

	ErrInvalidCompletionDate = errors.New("completion_date requires status Completado")
)

type CreateOrderInput struct {
	DoctorID        string
	PatientName     string
	JobItems        []entities.JobItem
	CaseDescription string
	Priority        entities.Priority
}

// OrderPatch carries the fields of an update. Nil fields are left untouched.
// JobType and Cost edit a single-item order in place and are ignored when
// JobItems is set.
type OrderPatch struct {
	DoctorID        *string
	PatientName     *string
	JobItems        []entities.JobItem
	JobType         *string
	Cost            *decimal.Decimal
	CaseDescription *string
	Priority        *entities.Priority
	Status          *entities.OrderStatus
	CompletionDate  *time.Time
}

type OrderFilter struct {
	Status   entities.OrderStatus
	DoctorID string
}

// IOrderUseCase exposes the order ledger.
//
//   - Create assigns the order number and starts the order as Pendiente.
//   - Update entering Completado stamps completion_date and, with a balance left,
//     notifies the pending balance.
type IOrderUseCase interface {
	Create(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	Update(ctx context.Context, id string, patch OrderPatch) (entities.Order, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]entities.Order, error)
}

type OrderUseCase struct {
	repo       interfaces.IOrderRepository
	doctorRepo interfaces.IDoctorRepository
	numbers    IOrderNumberAllocator
	notifier   notifier
	now        func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	doctorRepo interfaces.IDoctorRepository,
	numbers IOrderNumberAllocator,
	notifications interfaces.INotificationRepository,
) *OrderUseCase {
	return &OrderUseCase{
		repo:       repo,
		doctorRepo: doctorRepo,
		numbers:    numbers,
		notifier:   notifier{repo: notifications, now: time.Now},
		now:        time.Now,
	}
}

func (u *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	doctorID := strings.TrimSpace(in.DoctorID)
	if doctorID == "" {
		return entities.Order{}, ErrInvalidDoctorID
	}
	patient := strings.TrimSpace(in.PatientName)
	if patient == "" {
		return entities.Order{}, ErrInvalidPatientName
	}
	if err := validateJobItems(in.JobItems); err != nil {
		return entities.Order{}, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entities.PriorityNormal
	}
	if !priority.Valid() {
		return entities.Order{}, ErrInvalidPriority
	}
	if err := u.ensureDoctor(ctx, doctorID); err != nil {
		return entities.Order{}, err
	}

	now := u.now().UTC()
	category := in.JobItems[0].Category
	number, err := u.numbers.Next(ctx, category, now)
	if err != nil {
		return entities.Order{}, err
	}

	o := entities.Order{
		ID:              uuid.NewString(),
		OrderNumber:     number,
		DoctorID:        doctorID,
		PatientName:     patient,
		JobItems:        in.JobItems,
		CaseDescription: strings.TrimSpace(in.CaseDescription),
		Priority:        priority,
		Cost:            entities.CostOf(in.JobItems),
		Payments:        []entities.Payment{},
		Notes:           []entities.Note{},
		Status:          entities.OrderStatusPendiente,
		CreationDate:    now,
		UpdatedAt:       now,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		if errors.Is(err, interfaces.ErrDoctorMissing) {
			return entities.Order{}, ErrUnknownDoctor
		}
		if errors.Is(err, interfaces.ErrOrderNumberTaken) {
			logging.FromContext(ctx).Error("critical: order number already in use",
				slog.String("order_number", number),
				slog.String("category", category),
			)
			return entities.Order{}, ErrOrderNumberConflict
		}
		return entities.Order{}, err
	}
	logging.FromContext(ctx).Info("order created",
		slog.String("order_id", created.ID),
		slog.String("order_number", created.OrderNumber),
	)
	return created, nil
}

func (u *OrderUseCase) Update(ctx context.Context, id string, patch OrderPatch) (entities.Order, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	if patch.DoctorID != nil {
		doctorID := strings.TrimSpace(*patch.DoctorID)
		if doctorID == "" {
			return entities.Order{}, ErrInvalidDoctorID
		}
		if doctorID != o.DoctorID {
			if err := u.ensureDoctor(ctx, doctorID); err != nil {
				return entities.Order{}, err
			}
			o.DoctorID = doctorID
		}
	}
	if patch.PatientName != nil {
		patient := strings.TrimSpace(*patch.PatientName)
		if patient == "" {
			return entities.Order{}, ErrInvalidPatientName
		}
		o.PatientName = patient
	}
	items := patch.JobItems
	if items == nil && (patch.JobType != nil || patch.Cost != nil) {
		if items, err = editSingleItem(o.JobItems, patch.JobType, patch.Cost); err != nil {
			return entities.Order{}, err
		}
	}
	if items != nil {
		if err := validateJobItems(items); err != nil {
			return entities.Order{}, err
		}
		o.JobItems = items
		o.Cost = entities.CostOf(items)
	}
	if patch.CaseDescription != nil {
		o.CaseDescription = strings.TrimSpace(*patch.CaseDescription)
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return entities.Order{}, ErrInvalidPriority
		}
		o.Priority = *patch.Priority
	}

	completing := false
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return entities.Order{}, ErrInvalidStatus
		}
		completing = *patch.Status == entities.OrderStatusCompletado && o.Status != entities.OrderStatusCompletado
		o.Status = *patch.Status
	}
	if patch.CompletionDate != nil {
		if o.Status != entities.OrderStatusCompletado {
			return entities.Order{}, ErrInvalidCompletionDate
		}
		cd := patch.CompletionDate.UTC()
		o.CompletionDate = &cd
	} else if completing {
		cd := u.now().UTC()
		o.CompletionDate = &cd
	}

	saved, err := u.repo.Save(ctx, o)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Order{}, ErrConcurrentUpdate
		}
		return entities.Order{}, err
	}

	if completing && saved.Balance().IsPositive() {
		u.notifier.bestEffort(ctx, saved.ID, completedWithBalanceMessage(saved))
	}
	return saved, nil
}

func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrderNotFound
	}
	logging.FromContext(ctx).Info("order deleted", slog.String("order_id", id))
	return nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// List returns matching orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter OrderFilter) ([]entities.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var (
		orders []entities.Order
		err    error
	)
	switch doctorID := strings.TrimSpace(filter.DoctorID); {
	case doctorID != "":
		orders, err = u.repo.ListByDoctorID(ctx, doctorID)
	case filter.Status != "":
		orders, err = u.repo.ListByStatus(ctx, filter.Status)
	default:
		orders, err = u.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if filter.Status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == filter.Status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (u *OrderUseCase) ensureDoctor(ctx context.Context, doctorID string) error {
	d, err := u.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if d.ID == "" {
		return ErrUnknownDoctor
	}
	return nil
}

// editSingleItem rebuilds the only item of an order with a new type or cost.
// Orders with several items must be edited through the full item list.
func editSingleItem(current []entities.JobItem, jobType *string, cost *decimal.Decimal) ([]entities.JobItem, error) {
	if len(current) != 1 {
		return nil, ErrInvalidJobItems
	}
	item := current[0]
	if jobType != nil {
		jt := strings.TrimSpace(*jobType)
		if jt == "" {
			return nil, ErrInvalidJobItems
		}
		item.Category, item.Type = jt, jt
	}
	if cost != nil {
		item.Units = 1
		item.UnitCost = *cost
	}
	return []entities.JobItem{item}, nil
}

func validateJobItems(items []entities.JobItem) error {
	if len(items) == 0 {
		return ErrInvalidJobItems
	}
	for _, it := range items {
		if strings.TrimSpace(it.Category) == "" || it.Units < 1 {
			return ErrInvalidJobItems
		}
		if !it.UnitCost.IsPositive() {
			return ErrInvalidCost
		}
	}
	if !entities.CostOf(items).IsPositive() {
		return ErrInvalidCost
	}
	return nil
}

func sortNewestFirst(orders []entities.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreationDate.After(orders[j].CreationDate)
	})
}
