package request

import (
	"encoding/json"
	"time"

	"laboratorio_dental/internal/usecase"

	"github.com/shopspring/decimal"
)

// PaymentRequest adds or replaces a payment. MPPayload, when present on add, is
// charged through Mercado Pago for exactly Amount before the payment is recorded.
type PaymentRequest struct {
	Amount      float64         `json:"amount" binding:"required,gt=0"`
	Date        *time.Time      `json:"date"`
	Description string          `json:"description"`
	MPPayload   json.RawMessage `json:"mp_payload" swaggertype:"object"`
}

func (r PaymentRequest) ToInput() usecase.PaymentInput {
	in := usecase.PaymentInput{
		Amount:      decimal.NewFromFloat(r.Amount),
		Date:        r.Date,
		Description: r.Description,
	}
	if len(r.MPPayload) > 0 && string(r.MPPayload) != "null" {
		in.ProviderPayload = r.MPPayload
	}
	return in
}

// NoteRequest adds a note. Author defaults to the caller's display name.
type NoteRequest struct {
	Text   string `json:"text" binding:"required"`
	Author string `json:"author"`
}

type UpdateNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

type DoctorRequest struct {
	Name    string `json:"name" binding:"required"`
	Clinic  string `json:"clinic"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

func (r DoctorRequest) ToInput() usecase.DoctorInput {
	return usecase.DoctorInput{Name: r.Name, Clinic: r.Clinic, Phone: r.Phone, Email: r.Email, Address: r.Address}
}
