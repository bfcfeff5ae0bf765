package entities

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	// RoleOperador may not delete orders, doctors, notes, payments or notifications.
	RoleOperador Role = "operador"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperador
}

type User struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
