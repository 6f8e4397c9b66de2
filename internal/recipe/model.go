package recipe

import "time"

type Recipe struct {
	ID          string       `json:"id"`
	HouseholdID string       `json:"household_id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Servings    int          `json:"servings"`
	ImageURL    *string      `json:"image_url,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Ingredient is read-only input to the provisioning engine. An ingredient
// without an InventoryItemID is "unlinked": it cannot be matched to stock
// and is always reported as unavailable.
type Ingredient struct {
	ID              string  `json:"id"`
	RecipeID        string  `json:"recipe_id"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	Notes           *string `json:"notes,omitempty"`
	InventoryItemID *string `json:"inventory_item_id,omitempty"`
}

// Linked reports whether the ingredient references an inventory item.
func (i Ingredient) Linked() bool {
	return i.InventoryItemID != nil && *i.InventoryItemID != ""
}
