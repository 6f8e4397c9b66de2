package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	item.ID = uuid.New().String()

	return r.db.QueryRow(ctx, `
		INSERT INTO shopping_list_items (
			id, household_id, name, quantity, unit, category, completed, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING created_at, updated_at
	`, item.ID, item.HouseholdID, item.Name, item.Quantity, item.Unit, item.Category, item.Completed).
		Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, householdID, id string) (*Item, error) {
	var item Item

	err := r.db.QueryRow(ctx, `
		SELECT id, household_id, name, quantity, unit, category, completed, created_at, updated_at
		FROM shopping_list_items
		WHERE id = $1 AND household_id = $2
	`, id, householdID).Scan(
		&item.ID, &item.HouseholdID, &item.Name, &item.Quantity,
		&item.Unit, &item.Category, &item.Completed, &item.CreatedAt, &item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("shopping list item not found")
		}
		return nil, err
	}

	return &item, nil
}

func (r *PostgresRepository) ListByHousehold(ctx context.Context, householdID string) ([]*Item, error) {
	return r.queryItems(ctx, `
		SELECT id, household_id, name, quantity, unit, category, completed, created_at, updated_at
		FROM shopping_list_items
		WHERE household_id = $1
		ORDER BY created_at ASC
	`, householdID)
}

func (r *PostgresRepository) ListCompleted(ctx context.Context, householdID string) ([]*Item, error) {
	return r.queryItems(ctx, `
		SELECT id, household_id, name, quantity, unit, category, completed, created_at, updated_at
		FROM shopping_list_items
		WHERE household_id = $1
		  AND completed = TRUE
		ORDER BY created_at ASC
	`, householdID)
}

func (r *PostgresRepository) GetMany(ctx context.Context, householdID string, ids []string) ([]*Item, error) {
	return r.queryItems(ctx, `
		SELECT id, household_id, name, quantity, unit, category, completed, created_at, updated_at
		FROM shopping_list_items
		WHERE household_id = $1
		  AND id = ANY($2)
		ORDER BY created_at ASC
	`, householdID, ids)
}

func (r *PostgresRepository) queryItems(ctx context.Context, sql string, args ...any) ([]*Item, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.HouseholdID, &item.Name, &item.Quantity,
			&item.Unit, &item.Category, &item.Completed, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, item *Item) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE shopping_list_items
		SET name = $1,
		    quantity = $2,
		    unit = $3,
		    category = $4,
		    completed = $5,
		    updated_at = now()
		WHERE id = $6 AND household_id = $7
	`, item.Name, item.Quantity, item.Unit, item.Category, item.Completed, item.ID, item.HouseholdID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("shopping list item not found")
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, householdID, id string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM shopping_list_items
		WHERE id = $1 AND household_id = $2
	`, id, householdID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("shopping list item not found")
	}

	return nil
}

func (r *PostgresRepository) HasIncompleteNamed(ctx context.Context, householdID, name string) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM shopping_list_items
			WHERE household_id = $1
			  AND lower(name) = lower($2)
			  AND completed = FALSE
		)
	`, householdID, name).Scan(&exists)

	return exists, err
}

// --------------------------------------------------
// CONVERSION TRANSACTION (PER ITEM)
// --------------------------------------------------

func (r *PostgresRepository) RunConvertTx(ctx context.Context, fn func(tx ConvertTx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgxConvertTx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type pgxConvertTx struct {
	tx pgx.Tx
}

func (c *pgxConvertTx) LockInventoryByName(ctx context.Context, householdID, name string) (*inventory.Item, error) {
	var item inventory.Item

	err := c.tx.QueryRow(ctx, `
		SELECT id, household_id, name, quantity, unit, category, created_at, updated_at
		FROM inventory_items
		WHERE household_id = $1
		  AND lower(name) = lower($2)
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE
	`, householdID, name).Scan(
		&item.ID, &item.HouseholdID, &item.Name, &item.Quantity,
		&item.Unit, &item.Category, &item.CreatedAt, &item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

func (c *pgxConvertTx) CreateInventoryItem(ctx context.Context, item *inventory.Item) error {
	item.ID = uuid.New().String()

	return c.tx.QueryRow(ctx, `
		INSERT INTO inventory_items (
			id, household_id, name, quantity, unit, category, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, item.ID, item.HouseholdID, item.Name, item.Quantity, item.Unit, item.Category).
		Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (c *pgxConvertTx) AddInventoryQuantity(ctx context.Context, itemID string, delta float64) error {
	_, err := c.tx.Exec(ctx, `
		UPDATE inventory_items
		SET quantity = quantity + $1,
		    updated_at = now()
		WHERE id = $2
	`, delta, itemID)

	return err
}

func (c *pgxConvertTx) DeleteShoppingItem(ctx context.Context, householdID, itemID string) error {
	_, err := c.tx.Exec(ctx, `
		DELETE FROM shopping_list_items
		WHERE id = $1 AND household_id = $2
	`, itemID, householdID)

	return err
}
