package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/usecase/interfaces"
)

// In-memory stores with the same contracts as the DynamoDB repositories.

type memOrders struct {
	mu      sync.Mutex
	orders  map[string]entities.Order
	numbers map[string]bool
}

var _ interfaces.IOrderRepository = (*memOrders)(nil)

func newMemOrders() *memOrders {
	return &memOrders{orders: map[string]entities.Order{}, numbers: map[string]bool{}}
}

func cloneOrder(o entities.Order) entities.Order {
	o.JobItems = append([]entities.JobItem{}, o.JobItems...)
	o.Payments = append([]entities.Payment{}, o.Payments...)
	o.Notes = append([]entities.Note{}, o.Notes...)
	if o.CompletionDate != nil {
		cd := *o.CompletionDate
		o.CompletionDate = &cd
	}
	return o
}

func (m *memOrders) put(o entities.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = cloneOrder(o)
	m.numbers[o.OrderNumber] = true
}

func (m *memOrders) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.numbers[o.OrderNumber] {
		return entities.Order{}, interfaces.ErrOrderNumberTaken
	}
	m.numbers[o.OrderNumber] = true
	m.orders[o.ID] = cloneOrder(o)
	return cloneOrder(o), nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return entities.Order{}, nil
	}
	return cloneOrder(o), nil
}

func (m *memOrders) List(_ context.Context) ([]entities.Order, error) {
	return m.filter(func(entities.Order) bool { return true }), nil
}

func (m *memOrders) ListByDoctorID(_ context.Context, doctorID string) ([]entities.Order, error) {
	return m.filter(func(o entities.Order) bool { return o.DoctorID == doctorID }), nil
}

func (m *memOrders) ListIDsByDoctorID(_ context.Context, doctorID string) ([]string, error) {
	var ids []string
	for _, o := range m.filter(func(o entities.Order) bool { return o.DoctorID == doctorID }) {
		ids = append(ids, o.ID)
	}
	return ids, nil
}

func (m *memOrders) ListByStatus(_ context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return m.filter(func(o entities.Order) bool { return o.Status == status }), nil
}

func (m *memOrders) ListOrderNumbers(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, o := range m.orders {
		out = append(out, o.OrderNumber)
	}
	return out, nil
}

func (m *memOrders) Save(_ context.Context, o entities.Order) (entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[o.ID]
	if !ok || stored.Version != o.Version {
		return entities.Order{}, interfaces.ErrVersionConflict
	}
	o.Version++
	m.orders[o.ID] = cloneOrder(o)
	return cloneOrder(o), nil
}

func (m *memOrders) AppendPayment(_ context.Context, orderID string, p entities.Payment) (entities.Order, error) {
	return m.mutate(orderID, func(o *entities.Order) { o.Payments = append(o.Payments, p) })
}

func (m *memOrders) AppendNote(_ context.Context, orderID string, n entities.Note) (entities.Order, error) {
	return m.mutate(orderID, func(o *entities.Order) { o.Notes = append(o.Notes, n) })
}

func (m *memOrders) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.orders[id]
	delete(m.orders, id)
	return ok, nil
}

func (m *memOrders) mutate(id string, fn func(*entities.Order)) (entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return entities.Order{}, nil
	}
	o = cloneOrder(o)
	fn(&o)
	o.Version++
	m.orders[id] = o
	return cloneOrder(o), nil
}

func (m *memOrders) filter(keep func(entities.Order) bool) []entities.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Order
	for _, o := range m.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

type memCounter struct {
	mu   sync.Mutex
	seqs map[string]int64
}

var _ interfaces.ISequenceCounter = (*memCounter)(nil)

func newMemCounter() *memCounter {
	return &memCounter{seqs: map[string]int64{}}
}

func (c *memCounter) Next(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seqs[key]++
	return c.seqs[key], nil
}

func (c *memCounter) SeedAtLeast(_ context.Context, key string, value int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seqs[key] < value {
		c.seqs[key] = value
	}
	return nil
}

type memNotifications struct {
	mu    sync.Mutex
	items []entities.Notification
	err   error
}

var _ interfaces.INotificationRepository = (*memNotifications)(nil)

func (n *memNotifications) Create(_ context.Context, x entities.Notification) (entities.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return entities.Notification{}, n.err
	}
	n.items = append(n.items, x)
	return x, nil
}

func (n *memNotifications) List(_ context.Context) ([]entities.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entities.Notification{}, n.items...), nil
}

func (n *memNotifications) MarkRead(_ context.Context, id string) (entities.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Read = true
			return n.items[i], nil
		}
	}
	return entities.Notification{}, nil
}

func (n *memNotifications) Delete(_ context.Context, id string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (n *memNotifications) DeleteAll(_ context.Context) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := len(n.items)
	n.items = nil
	return count, nil
}

func (n *memNotifications) ExistsForOrder(_ context.Context, orderID, fragment string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, x := range n.items {
		if x.OrderID == orderID && strings.Contains(x.Message, fragment) {
			return true, nil
		}
	}
	return false, nil
}

func (n *memNotifications) forOrder(orderID string) []entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []entities.Notification
	for _, x := range n.items {
		if x.OrderID == orderID {
			out = append(out, x)
		}
	}
	return out
}

type memDoctors struct {
	mu      sync.Mutex
	doctors map[string]entities.Doctor
}

var _ interfaces.IDoctorRepository = (*memDoctors)(nil)

func newMemDoctors(ds ...entities.Doctor) *memDoctors {
	m := &memDoctors{doctors: map[string]entities.Doctor{}}
	for _, d := range ds {
		m.doctors[d.ID] = d
	}
	return m
}

func (m *memDoctors) Create(_ context.Context, d entities.Doctor) (entities.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doctors[d.ID] = d
	return d, nil
}

func (m *memDoctors) GetByID(_ context.Context, id string) (entities.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doctors[id], nil
}

func (m *memDoctors) GetByIDs(_ context.Context, ids []string) (map[string]entities.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]entities.Doctor{}
	for _, id := range ids {
		if d, ok := m.doctors[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func (m *memDoctors) List(_ context.Context) ([]entities.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Doctor
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDoctors) Update(_ context.Context, d entities.Doctor) (entities.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[d.ID]; !ok {
		return entities.Doctor{}, nil
	}
	m.doctors[d.ID] = d
	return d, nil
}

func (m *memDoctors) DeleteWithOrders(_ context.Context, doctorID string, _ []string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.doctors[doctorID]
	delete(m.doctors, doctorID)
	return ok, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
