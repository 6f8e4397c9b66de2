package household

import "time"

// Household is the tenant boundary: all inventory, recipes, meal plans
// and shopping lists are scoped to exactly one.
type Household struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
