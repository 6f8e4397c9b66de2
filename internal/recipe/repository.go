package recipe

import "context"

// Repository defines all database operations for recipes
type Repository interface {

	// Create persists the recipe and its ingredient list atomically.
	Create(ctx context.Context, r *Recipe) error

	// Get returns the recipe with ingredients in declared order.
	Get(ctx context.Context, householdID, id string) (*Recipe, error)

	ListByHousehold(ctx context.Context, householdID string) ([]*Recipe, error)
	Delete(ctx context.Context, householdID, id string) error
	SetImageURL(ctx context.Context, householdID, id, url string) error
}
