package shopping

import "time"

// Item is one shopping-list entry. Quantity, unit and category are
// optional: hand-written entries often carry just a name. Completed
// entries are the reconciler's input and are deleted on successful
// conversion into inventory.
type Item struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	Name        string    `json:"name"`
	Quantity    *float64  `json:"quantity,omitempty"`
	Unit        *string   `json:"unit,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
