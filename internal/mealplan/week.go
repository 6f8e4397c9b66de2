package mealplan

import (
	"time"

	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
	"github.com/kbredenberg/mealplanner-sub000/internal/recipe"
	"github.com/kbredenberg/mealplanner-sub000/internal/units"
)

// MealTrace records which meal contributed how much to an aggregated
// requirement.
type MealTrace struct {
	MealID     string    `json:"meal_id"`
	Date       time.Time `json:"date"`
	MealType   MealType  `json:"meal_type"`
	RecipeName string    `json:"recipe_name"`
	Quantity   float64   `json:"quantity"`
}

// WeekItem is the aggregated demand for one linked inventory item across
// all uncooked meals of a plan.
type WeekItem struct {
	InventoryItemID string      `json:"inventory_item_id"`
	Name            string      `json:"name"`
	Unit            string      `json:"unit"`
	Category        string      `json:"category,omitempty"`
	TotalRequired   float64     `json:"total_required"`
	Available       float64     `json:"available"`
	Sufficient      bool        `json:"sufficient"`
	Shortfall       float64     `json:"shortfall"`
	Meals           []MealTrace `json:"meals"`
}

type WeekSummary struct {
	TotalIngredients        int `json:"total_ingredients"`
	SufficientIngredients   int `json:"sufficient_ingredients"`
	InsufficientIngredients int `json:"insufficient_ingredients"`

	// UnlinkedIngredients counts recipe ingredients that were dropped from
	// aggregation because they reference no inventory item. They appear in
	// per-recipe availability but not here, so the shortfall below can
	// under-report true needs. Surfaced so callers can decide what to do
	// about it.
	UnlinkedIngredients int `json:"unlinked_ingredients"`
}

type WeekReport struct {
	Items   []WeekItem  `json:"items"`
	Summary WeekSummary `json:"summary"`
}

// BuildWeekReport merges ingredient demand across uncooked meals, keyed by
// linked inventory item, then prices the totals against current stock.
// Pure read: mutates nothing.
func BuildWeekReport(
	meals []*PlanItem,
	recipes map[string]*recipe.Recipe,
	stock map[string]*inventory.Item,
) *WeekReport {

	byItem := make(map[string]*WeekItem)
	var order []string
	var unlinked int

	for _, meal := range meals {
		if meal.Cooked || meal.RecipeID == nil {
			continue
		}

		rec, ok := recipes[*meal.RecipeID]
		if !ok {
			continue
		}

		for _, ing := range rec.Ingredients {
			if !ing.Linked() {
				unlinked++
				continue
			}

			id := *ing.InventoryItemID
			agg, ok := byItem[id]
			if !ok {
				agg = &WeekItem{
					InventoryItemID: id,
					Name:            ing.Name,
					Unit:            ing.Unit,
				}
				byItem[id] = agg
				order = append(order, id)
			}

			agg.TotalRequired += ing.Quantity
			agg.Meals = append(agg.Meals, MealTrace{
				MealID:     meal.ID,
				Date:       meal.Date,
				MealType:   meal.MealType,
				RecipeName: rec.Name,
				Quantity:   ing.Quantity,
			})
		}
	}

	report := &WeekReport{
		Summary: WeekSummary{
			TotalIngredients:    len(order),
			UnlinkedIngredients: unlinked,
		},
	}

	for _, id := range order {
		agg := byItem[id]

		if row, ok := stock[id]; ok {
			agg.Available = row.Quantity
			agg.Category = row.Category
		}

		agg.Sufficient = units.Sufficient(agg.TotalRequired, agg.Available)
		agg.Shortfall = units.Shortfall(agg.TotalRequired, agg.Available)

		if agg.Sufficient {
			report.Summary.SufficientIngredients++
		} else {
			report.Summary.InsufficientIngredients++
		}

		report.Items = append(report.Items, *agg)
	}

	return report
}
