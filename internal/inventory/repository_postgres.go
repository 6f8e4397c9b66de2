package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	item.ID = uuid.New().String()
	if item.Category == "" {
		item.Category = "Uncategorized"
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO inventory_items (
			id, household_id, name, quantity, unit, category, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, item.ID, item.HouseholdID, item.Name, item.Quantity, item.Unit, item.Category).
		Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, householdID, id string) (*Item, error) {
	var item Item

	err := r.db.QueryRow(ctx, `
		SELECT id, household_id, name, quantity, unit, category, created_at, updated_at
		FROM inventory_items
		WHERE id = $1 AND household_id = $2
	`, id, householdID).Scan(
		&item.ID, &item.HouseholdID, &item.Name, &item.Quantity,
		&item.Unit, &item.Category, &item.CreatedAt, &item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("inventory item not found")
		}
		return nil, err
	}

	return &item, nil
}

func (r *PostgresRepository) ListByHousehold(ctx context.Context, householdID string) ([]*Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, household_id, name, quantity, unit, category, created_at, updated_at
		FROM inventory_items
		WHERE household_id = $1
		ORDER BY name ASC
	`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.HouseholdID, &item.Name, &item.Quantity,
			&item.Unit, &item.Category, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, item *Item) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE inventory_items
		SET name = $1,
		    quantity = $2,
		    unit = $3,
		    category = $4,
		    updated_at = now()
		WHERE id = $5 AND household_id = $6
	`, item.Name, item.Quantity, item.Unit, item.Category, item.ID, item.HouseholdID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("inventory item not found")
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, householdID, id string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM inventory_items
		WHERE id = $1 AND household_id = $2
	`, id, householdID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("inventory item not found")
	}

	return nil
}

func (r *PostgresRepository) Snapshot(ctx context.Context, householdID string) (map[string]*Item, error) {
	items, err := r.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]*Item, len(items))
	for _, item := range items {
		snapshot[item.ID] = item
	}

	return snapshot, nil
}
