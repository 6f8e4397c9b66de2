package recipe

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

// --------------------------------------------------
// CREATE (RECIPE + INGREDIENTS, ONE TX)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, rec *Recipe) error {
	rec.ID = uuid.New().String()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (
			id, household_id, name, description, servings, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at
	`, rec.ID, rec.HouseholdID, rec.Name, rec.Description, rec.Servings).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return err
	}

	for pos := range rec.Ingredients {
		ing := &rec.Ingredients[pos]
		ing.ID = uuid.New().String()
		ing.RecipeID = rec.ID

		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (
				id, recipe_id, name, quantity, unit, notes, inventory_item_id, position
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, ing.ID, ing.RecipeID, ing.Name, ing.Quantity, ing.Unit, ing.Notes, ing.InventoryItemID, pos)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// GET (WITH INGREDIENTS IN DECLARED ORDER)
// --------------------------------------------------
func (r *PostgresRepository) Get(ctx context.Context, householdID, id string) (*Recipe, error) {
	var rec Recipe

	err := r.db.QueryRow(ctx, `
		SELECT id, household_id, name, description, servings, image_url, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND household_id = $2
	`, id, householdID).Scan(
		&rec.ID, &rec.HouseholdID, &rec.Name, &rec.Description,
		&rec.Servings, &rec.ImageURL, &rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, recipe_id, name, quantity, unit, notes, inventory_item_id
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY position ASC
	`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(
			&ing.ID, &ing.RecipeID, &ing.Name, &ing.Quantity,
			&ing.Unit, &ing.Notes, &ing.InventoryItemID,
		); err != nil {
			return nil, err
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *PostgresRepository) ListByHousehold(ctx context.Context, householdID string) ([]*Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, household_id, name, description, servings, image_url, created_at, updated_at
		FROM recipes
		WHERE household_id = $1
		ORDER BY name ASC
	`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Recipe
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(
			&rec.ID, &rec.HouseholdID, &rec.Name, &rec.Description,
			&rec.Servings, &rec.ImageURL, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, householdID, id string) error {
	// ingredients go with it via ON DELETE CASCADE
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM recipes
		WHERE id = $1 AND household_id = $2
	`, id, householdID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("recipe not found")
	}

	return nil
}

func (r *PostgresRepository) SetImageURL(ctx context.Context, householdID, id, url string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE recipes
		SET image_url = $1,
		    updated_at = now()
		WHERE id = $2 AND household_id = $3
	`, url, id, householdID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("recipe not found")
	}

	return nil
}
