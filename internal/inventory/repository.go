package inventory

import "context"

// Repository defines all database operations for inventory items
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, householdID, id string) (*Item, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, householdID, id string) error

	// Snapshot returns the household's current stock keyed by item id.
	// Used by the availability evaluator and the week aggregator; both are
	// pure reads, so snapshot-level consistency is enough.
	Snapshot(ctx context.Context, householdID string) (map[string]*Item, error)
}
