package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of a lab order.
//
// Any status is reachable from any other; only entering Completado has side effects.
type OrderStatus string

const (
	OrderStatusPendiente  OrderStatus = "Pendiente"
	OrderStatusProcesando OrderStatus = "Procesando"
	OrderStatusCompletado OrderStatus = "Completado"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendiente, OrderStatusProcesando, OrderStatusCompletado:
		return true
	}
	return false
}

type Priority string

const (
	PriorityBaja    Priority = "Baja"
	PriorityNormal  Priority = "Normal"
	PriorityAlta    Priority = "Alta"
	PriorityUrgente Priority = "Urgente"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityBaja, PriorityNormal, PriorityAlta, PriorityUrgente:
		return true
	}
	return false
}

// JobItem is one line of dental work on an order.
//
// A legacy single job type is represented as a one-item list.
type JobItem struct {
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Units    int             `json:"units"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

func (j JobItem) Subtotal() decimal.Decimal {
	return j.UnitCost.Mul(decimal.NewFromInt(int64(j.Units)))
}

// Payment is owned by its order and never referenced on its own.
type Payment struct {
	ID                string          `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description,omitempty"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// Order is a unit of lab work persisted as a single document.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI doctor_id-index: doctor_id
//
// Balance is never stored; it is always Cost minus the payments on the document.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	DoctorID        string          `json:"doctor_id"`
	PatientName     string          `json:"patient_name"`
	JobItems        []JobItem       `json:"job_items"`
	CaseDescription string          `json:"case_description"`
	Priority        Priority        `json:"priority"`
	Cost            decimal.Decimal `json:"cost"`
	Payments        []Payment       `json:"payments"`
	Notes           []Note          `json:"notes"`
	Status          OrderStatus     `json:"status"`
	CreationDate    time.Time       `json:"creation_date"`
	CompletionDate  *time.Time      `json:"completion_date,omitempty"`
	Version         int64           `json:"version"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CostOf sums the job item subtotals.
func CostOf(items []JobItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (o Order) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

func (o Order) Balance() decimal.Decimal {
	return o.Cost.Sub(o.TotalPaid())
}

// Category returns the category that drives the order number prefix.
func (o Order) Category() string {
	if len(o.JobItems) == 0 {
		return ""
	}
	return o.JobItems[0].Category
}

func (o Order) PaymentIndex(paymentID string) int {
	for i, p := range o.Payments {
		if p.ID == paymentID {
			return i
		}
	}
	return -1
}

func (o Order) NoteIndex(noteID string) int {
	for i, n := range o.Notes {
		if n.ID == noteID {
			return i
		}
	}
	return -1
}
