package household

import "context"

// Repository defines all database operations for households
type Repository interface {
	Create(ctx context.Context, h *Household) error
	Get(ctx context.Context, id string) (*Household, error)
	List(ctx context.Context) ([]*Household, error)
}
