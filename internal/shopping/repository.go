package shopping

import (
	"context"

	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
)

// Repository defines all database operations for the shopping list
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, householdID, id string) (*Item, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, householdID, id string) error

	// HasIncompleteNamed reports whether an open (incomplete) entry with
	// this name already exists for the household. Case-insensitive, same
	// matching the reconciler uses against inventory.
	HasIncompleteNamed(ctx context.Context, householdID, name string) (bool, error)

	ListCompleted(ctx context.Context, householdID string) ([]*Item, error)
	GetMany(ctx context.Context, householdID string, ids []string) ([]*Item, error)

	// RunConvertTx executes fn against a transaction handle scoped to one
	// shopping entry's conversion. Keeping the lookup-then-credit sequence
	// in one transaction stops two concurrent conversions from
	// double-crediting the same inventory row.
	RunConvertTx(ctx context.Context, fn func(tx ConvertTx) error) error
}

// ConvertTx is the per-item transaction handle for purchase conversion.
type ConvertTx interface {

	// LockInventoryByName finds an inventory item by case-insensitive name
	// within the household, locked for update. Returns (nil, nil) when no
	// match exists.
	LockInventoryByName(ctx context.Context, householdID, name string) (*inventory.Item, error)

	CreateInventoryItem(ctx context.Context, item *inventory.Item) error
	AddInventoryQuantity(ctx context.Context, itemID string, delta float64) error
	DeleteShoppingItem(ctx context.Context, householdID, itemID string) error
}
