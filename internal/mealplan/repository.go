package mealplan

import (
	"context"
	"time"

	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
)

// Repository defines all database operations for meal plans
type Repository interface {
	CreatePlan(ctx context.Context, p *MealPlan) error
	GetPlan(ctx context.Context, householdID, planID string) (*MealPlan, error)
	ListPlans(ctx context.Context, householdID string) ([]*MealPlan, error)

	AddItem(ctx context.Context, item *PlanItem) error
	GetItem(ctx context.Context, planID, itemID string) (*PlanItem, error)
	UpdateItem(ctx context.Context, item *PlanItem) error
	DeleteItem(ctx context.Context, planID, itemID string) error
	ListItems(ctx context.Context, planID string) ([]*PlanItem, error)

	// ListUncooked returns the plan's slots with cooked=false and a recipe
	// assigned, the only slots the week aggregator considers.
	ListUncooked(ctx context.Context, planID string) ([]*PlanItem, error)

	// RunCookTx executes fn against a transaction handle. Everything fn
	// writes lands atomically on commit; any error from fn rolls the whole
	// unit back. This is the engine's single mandatory critical section.
	RunCookTx(ctx context.Context, fn func(tx CookTx) error) error
}

// CookTx is the transaction handle the cook operation works through.
type CookTx interface {

	// LockInventoryItem reads a row under an exclusive row lock, so a
	// concurrent cook touching the same item blocks and then re-validates
	// against the post-commit state. Returns (nil, nil) when absent.
	LockInventoryItem(ctx context.Context, householdID, itemID string) (*inventory.Item, error)

	SetInventoryQuantity(ctx context.Context, itemID string, quantity float64) error

	// MarkCooked flips cooked from false to true. It must fail if the row
	// is already cooked, so a racing cook of the same meal loses cleanly.
	MarkCooked(ctx context.Context, itemID string, at time.Time) error
}
