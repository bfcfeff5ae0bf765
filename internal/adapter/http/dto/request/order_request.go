package request

import (
	"strings"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/usecase"

	"github.com/shopspring/decimal"
)

type JobItemRequest struct {
	Category string  `json:"category" binding:"required"`
	Type     string  `json:"type"`
	Units    int     `json:"units" binding:"omitempty,min=1"`
	UnitCost float64 `json:"unit_cost" binding:"required,gt=0"`
}

// CreateOrderRequest accepts either job_items or the single job_type + cost form,
// which becomes a one-item list.
type CreateOrderRequest struct {
	DoctorID        string           `json:"doctor_id" binding:"required"`
	PatientName     string           `json:"patient_name" binding:"required"`
	JobItems        []JobItemRequest `json:"job_items" binding:"omitempty,dive"`
	JobType         string           `json:"job_type"`
	Cost            float64          `json:"cost" binding:"omitempty,gt=0"`
	CaseDescription string           `json:"case_description"`
	Priority        string           `json:"priority" binding:"omitempty,priority"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		DoctorID:        r.DoctorID,
		PatientName:     r.PatientName,
		JobItems:        jobItems(r.JobItems, r.JobType, r.Cost),
		CaseDescription: r.CaseDescription,
		Priority:        entities.Priority(r.Priority),
	}
}

// UpdateOrderRequest is a partial update; absent fields keep their value.
type UpdateOrderRequest struct {
	DoctorID        *string          `json:"doctor_id"`
	PatientName     *string          `json:"patient_name"`
	JobItems        []JobItemRequest `json:"job_items" binding:"omitempty,dive"`
	JobType         *string          `json:"job_type"`
	Cost            *float64         `json:"cost" binding:"omitempty,gt=0"`
	CaseDescription *string          `json:"case_description"`
	Priority        *string          `json:"priority" binding:"omitempty,priority"`
	Status          *string          `json:"status" binding:"omitempty,order_status"`
	CompletionDate  *time.Time       `json:"completion_date"`
}

func (r UpdateOrderRequest) ToPatch() usecase.OrderPatch {
	patch := usecase.OrderPatch{
		DoctorID:        r.DoctorID,
		PatientName:     r.PatientName,
		CaseDescription: r.CaseDescription,
		CompletionDate:  r.CompletionDate,
	}
	switch {
	case r.JobItems != nil:
		patch.JobItems = toJobItems(r.JobItems)
	case r.JobType != nil && r.Cost != nil:
		patch.JobItems = jobItems(nil, *r.JobType, *r.Cost)
	default:
		patch.JobType = r.JobType
		if r.Cost != nil {
			c := decimal.NewFromFloat(*r.Cost)
			patch.Cost = &c
		}
	}
	if r.Priority != nil {
		p := entities.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := entities.OrderStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

func jobItems(items []JobItemRequest, jobType string, cost float64) []entities.JobItem {
	if len(items) > 0 {
		return toJobItems(items)
	}
	jobType = strings.TrimSpace(jobType)
	if jobType == "" && cost == 0 {
		return nil
	}
	return []entities.JobItem{{Category: jobType, Type: jobType, Units: 1, UnitCost: decimal.NewFromFloat(cost)}}
}

// toJobItems keeps an empty non-nil slice so an explicit [] is rejected downstream.
func toJobItems(items []JobItemRequest) []entities.JobItem {
	out := make([]entities.JobItem, 0, len(items))
	for _, it := range items {
		units := it.Units
		if units == 0 {
			units = 1
		}
		out = append(out, entities.JobItem{
			Category: strings.TrimSpace(it.Category),
			Type:     strings.TrimSpace(it.Type),
			Units:    units,
			UnitCost: decimal.NewFromFloat(it.UnitCost),
		})
	}
	return out
}
