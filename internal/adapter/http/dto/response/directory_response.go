package response

import (
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/usecase"
)

type DoctorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Clinic    string    `json:"clinic,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDoctor(d entities.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:        d.ID,
		Name:      d.Name,
		Clinic:    d.Clinic,
		Phone:     d.Phone,
		Email:     d.Email,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDoctors(ds []entities.Doctor) []DoctorResponse {
	out := make([]DoctorResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDoctor(d))
	}
	return out
}

type DoctorDeletedResponse struct {
	ID            string `json:"id"`
	OrdersDeleted int    `json:"orders_deleted"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func FromNotification(n entities.Notification) NotificationResponse {
	return NotificationResponse{ID: n.ID, OrderID: n.OrderID, Message: n.Message, Read: n.Read, CreatedAt: n.CreatedAt}
}

func FromNotifications(ns []entities.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, FromNotification(n))
	}
	return out
}

// CountResponse reports how many records a bulk operation touched.
type CountResponse struct {
	Count int `json:"count"`
}

type UserResponse struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{Username: u.Username, Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func FromLogin(r usecase.LoginResult) LoginResponse {
	return LoginResponse{Token: r.Token, TokenType: "Bearer", ExpiresAt: r.ExpiresAt, User: FromUser(r.User)}
}
