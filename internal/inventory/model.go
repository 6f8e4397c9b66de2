package inventory

import "time"

// Item is a stocked ingredient owned by a household. Quantity is the
// only field the provisioning engine ever mutates: cooking debits it,
// purchase conversion credits it. The engine never deletes items.
type Item struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
