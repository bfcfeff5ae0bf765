package response

import (
	"time"

	"laboratorio_dental/internal/domain/entities"
)

type JobItemResponse struct {
	Category string  `json:"category"`
	Type     string  `json:"type,omitempty"`
	Units    int     `json:"units"`
	UnitCost float64 `json:"unit_cost"`
	Subtotal float64 `json:"subtotal"`
}

type PaymentResponse struct {
	ID                string    `json:"id"`
	Amount            float64   `json:"amount"`
	Date              time.Time `json:"date"`
	Description       string    `json:"description,omitempty"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderResponse always carries the computed balance. Doctor is set only when the
// caller asked for populate=doctor.
type OrderResponse struct {
	ID              string            `json:"id"`
	OrderNumber     string            `json:"order_number"`
	DoctorID        string            `json:"doctor_id"`
	Doctor          *DoctorResponse   `json:"doctor,omitempty"`
	PatientName     string            `json:"patient_name"`
	JobItems        []JobItemResponse `json:"job_items"`
	CaseDescription string            `json:"case_description"`
	Priority        string            `json:"priority"`
	Cost            float64           `json:"cost"`
	TotalPaid       float64           `json:"total_paid"`
	Balance         float64           `json:"balance"`
	Payments        []PaymentResponse `json:"payments"`
	Notes           []NoteResponse    `json:"notes"`
	Status          string            `json:"status"`
	CreationDate    time.Time         `json:"creation_date"`
	CompletionDate  *time.Time        `json:"completion_date,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	items := make([]JobItemResponse, 0, len(o.JobItems))
	for _, it := range o.JobItems {
		items = append(items, JobItemResponse{
			Category: it.Category,
			Type:     it.Type,
			Units:    it.Units,
			UnitCost: it.UnitCost.InexactFloat64(),
			Subtotal: it.Subtotal().InexactFloat64(),
		})
	}
	payments := make([]PaymentResponse, 0, len(o.Payments))
	for _, p := range o.Payments {
		payments = append(payments, PaymentResponse{
			ID:                p.ID,
			Amount:            p.Amount.InexactFloat64(),
			Date:              p.Date,
			Description:       p.Description,
			ProviderPaymentID: p.ProviderPaymentID,
		})
	}
	notes := make([]NoteResponse, 0, len(o.Notes))
	for _, n := range o.Notes {
		notes = append(notes, NoteResponse{ID: n.ID, Text: n.Text, Author: n.Author, Timestamp: n.Timestamp})
	}

	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		DoctorID:        o.DoctorID,
		PatientName:     o.PatientName,
		JobItems:        items,
		CaseDescription: o.CaseDescription,
		Priority:        string(o.Priority),
		Cost:            o.Cost.InexactFloat64(),
		TotalPaid:       o.TotalPaid().InexactFloat64(),
		Balance:         o.Balance().InexactFloat64(),
		Payments:        payments,
		Notes:           notes,
		Status:          string(o.Status),
		CreationDate:    o.CreationDate,
		CompletionDate:  o.CompletionDate,
		UpdatedAt:       o.UpdatedAt,
	}
}

// FromOrders embeds doctors from the given map when it is non-nil.
func FromOrders(orders []entities.Order, doctors map[string]entities.Doctor) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, WithDoctor(FromOrder(o), doctors))
	}
	return out
}

func WithDoctor(r OrderResponse, doctors map[string]entities.Doctor) OrderResponse {
	if d, ok := doctors[r.DoctorID]; ok {
		dr := FromDoctor(d)
		r.Doctor = &dr
	}
	return r
}
