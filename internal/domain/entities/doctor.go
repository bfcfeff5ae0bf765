package entities

import "time"

// Doctor is a client of the lab. Orders reference doctors by id.
type Doctor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Clinic    string    `json:"clinic"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
