package entities

import "time"

// Notification is derived by the ledger; users can only read, mark or delete it.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI order_id-index: order_id
type Notification struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
