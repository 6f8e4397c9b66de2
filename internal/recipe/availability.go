package recipe

import (
	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
	"github.com/kbredenberg/mealplanner-sub000/internal/units"
)

// AvailabilityRecord is derived on demand and never persisted: inventory
// can change between reads, so callers re-evaluate before anything
// irreversible.
type AvailabilityRecord struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Unit         string  `json:"unit"`
	Sufficient   bool    `json:"sufficient"`
	Unlinked     bool    `json:"unlinked,omitempty"`

	// UnitMismatch flags that the linked inventory row stocks a different
	// unit than the ingredient declares. The verdict above still compares
	// raw quantities with the ingredient's unit taken as authoritative, so
	// callers that care about the discrepancy check this flag.
	UnitMismatch bool `json:"unit_mismatch,omitempty"`
}

type AvailabilitySummary struct {
	TotalIngredients  int  `json:"total_ingredients"`
	AvailableCount    int  `json:"available_count"`
	SufficientCount   int  `json:"sufficient_count"`
	MissingCount      int  `json:"missing_count"`
	UnitMismatchCount int  `json:"unit_mismatch_count"`
	CanCookRecipe     bool `json:"can_cook_recipe"`
}

type Availability struct {
	Records []AvailabilityRecord `json:"ingredients"`
	Summary AvailabilitySummary  `json:"summary"`
}

// Evaluate produces a per-ingredient availability verdict against a stock
// snapshot. Records come back in ingredient order. Pure read.
func Evaluate(ingredients []Ingredient, stock map[string]*inventory.Item) Availability {
	records := make([]AvailabilityRecord, 0, len(ingredients))
	summary := AvailabilitySummary{TotalIngredients: len(ingredients)}

	for _, ing := range ingredients {
		rec := AvailabilityRecord{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Required:     ing.Quantity,
			Unit:         ing.Unit,
		}

		switch {
		case !ing.Linked():
			rec.Unlinked = true

		default:
			row, ok := stock[*ing.InventoryItemID]
			if ok {
				rec.Available = row.Quantity
				rec.Sufficient = units.Sufficient(ing.Quantity, row.Quantity)
				if !units.Combinable(ing.Unit, row.Unit) {
					rec.UnitMismatch = true
					summary.UnitMismatchCount++
				}
			}
		}

		if rec.Available > 0 {
			summary.AvailableCount++
		}
		if rec.Sufficient {
			summary.SufficientCount++
		}

		records = append(records, rec)
	}

	summary.MissingCount = summary.TotalIngredients - summary.SufficientCount
	summary.CanCookRecipe = summary.SufficientCount == summary.TotalIngredients

	return Availability{Records: records, Summary: summary}
}
