package mealplan

import "time"

type MealType string

const (
	Breakfast MealType = "BREAKFAST"
	Lunch     MealType = "LUNCH"
	Dinner    MealType = "DINNER"
	Snack     MealType = "SNACK"
)

func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

type MealPlan struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	Name        string    `json:"name"`
	WeekStart   time.Time `json:"week_start"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlanItem is one slot per (date, mealType) in a plan. Cooked transitions
// false → true exactly once via the cook transaction and never reverts.
type PlanItem struct {
	ID         string     `json:"id"`
	MealPlanID string     `json:"meal_plan_id"`
	Date       time.Time  `json:"date"`
	MealType   MealType   `json:"meal_type"`
	RecipeID   *string    `json:"recipe_id,omitempty"`
	Cooked     bool       `json:"cooked"`
	CookedAt   *time.Time `json:"cooked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
