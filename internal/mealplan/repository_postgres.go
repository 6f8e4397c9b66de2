package mealplan

import (
	"context"
	"errors"
	"time"

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

// --------------------------------------------------
// PLANS
// --------------------------------------------------

func (r *PostgresRepository) CreatePlan(ctx context.Context, p *MealPlan) error {
	p.ID = uuid.New().String()

	return r.db.QueryRow(ctx, `
		INSERT INTO meal_plans (id, household_id, name, week_start, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING created_at
	`, p.ID, p.HouseholdID, p.Name, p.WeekStart).Scan(&p.CreatedAt)
}

func (r *PostgresRepository) GetPlan(ctx context.Context, householdID, planID string) (*MealPlan, error) {
	var p MealPlan

	err := r.db.QueryRow(ctx, `
		SELECT id, household_id, name, week_start, created_at
		FROM meal_plans
		WHERE id = $1 AND household_id = $2
	`, planID, householdID).Scan(&p.ID, &p.HouseholdID, &p.Name, &p.WeekStart, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("meal plan not found")
		}
		return nil, err
	}

	return &p, nil
}

func (r *PostgresRepository) ListPlans(ctx context.Context, householdID string) ([]*MealPlan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, household_id, name, week_start, created_at
		FROM meal_plans
		WHERE household_id = $1
		ORDER BY week_start DESC
	`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*MealPlan
	for rows.Next() {
		var p MealPlan
		if err := rows.Scan(&p.ID, &p.HouseholdID, &p.Name, &p.WeekStart, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}

	return out, rows.Err()
}

// --------------------------------------------------
// PLAN ITEMS
// --------------------------------------------------

func (r *PostgresRepository) AddItem(ctx context.Context, item *PlanItem) error {
	item.ID = uuid.New().String()

	return r.db.QueryRow(ctx, `
		INSERT INTO meal_plan_items (
			id, meal_plan_id, date, meal_type, recipe_id, cooked, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, FALSE, now(), now())
		RETURNING created_at, updated_at
	`, item.ID, item.MealPlanID, item.Date, item.MealType, item.RecipeID).
		Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) GetItem(ctx context.Context, planID, itemID string) (*PlanItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
		SELECT id, meal_plan_id, date, meal_type, recipe_id, cooked, cooked_at, created_at, updated_at
		FROM meal_plan_items
		WHERE id = $1 AND meal_plan_id = $2
	`, itemID, planID))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.CodeMealNotFound, "meal not found")
		}
		return nil, err
	}

	return item, nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *PlanItem) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE meal_plan_items
		SET date = $1,
		    meal_type = $2,
		    recipe_id = $3,
		    updated_at = now()
		WHERE id = $4 AND meal_plan_id = $5
	`, item.Date, item.MealType, item.RecipeID, item.ID, item.MealPlanID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.CodeMealNotFound, "meal not found")
	}

	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, planID, itemID string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM meal_plan_items
		WHERE id = $1 AND meal_plan_id = $2
	`, itemID, planID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.CodeMealNotFound, "meal not found")
	}

	return nil
}

func (r *PostgresRepository) ListItems(ctx context.Context, planID string) ([]*PlanItem, error) {
	return r.queryItems(ctx, `
		SELECT id, meal_plan_id, date, meal_type, recipe_id, cooked, cooked_at, created_at, updated_at
		FROM meal_plan_items
		WHERE meal_plan_id = $1
		ORDER BY date ASC, meal_type ASC
	`, planID)
}

func (r *PostgresRepository) ListUncooked(ctx context.Context, planID string) ([]*PlanItem, error) {
	return r.queryItems(ctx, `
		SELECT id, meal_plan_id, date, meal_type, recipe_id, cooked, cooked_at, created_at, updated_at
		FROM meal_plan_items
		WHERE meal_plan_id = $1
		  AND cooked = FALSE
		  AND recipe_id IS NOT NULL
		ORDER BY date ASC, meal_type ASC
	`, planID)
}

func (r *PostgresRepository) queryItems(ctx context.Context, sql string, args ...any) ([]*PlanItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*PlanItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, rows.Err()
}

func scanItem(row pgx.Row) (*PlanItem, error) {
	var item PlanItem
	err := row.Scan(
		&item.ID, &item.MealPlanID, &item.Date, &item.MealType,
		&item.RecipeID, &item.Cooked, &item.CookedAt,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --------------------------------------------------
// COOK TRANSACTION (THE CRITICAL SECTION)
// --------------------------------------------------

func (r *PostgresRepository) RunCookTx(ctx context.Context, fn func(tx CookTx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgxCookTx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type pgxCookTx struct {
	tx pgx.Tx
}

func (c *pgxCookTx) LockInventoryItem(ctx context.Context, householdID, itemID string) (*inventory.Item, error) {
	var item inventory.Item

	err := c.tx.QueryRow(ctx, `
		SELECT id, household_id, name, quantity, unit, category, created_at, updated_at
		FROM inventory_items
		WHERE id = $1 AND household_id = $2
		FOR UPDATE
	`, itemID, householdID).Scan(
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

func (c *pgxCookTx) SetInventoryQuantity(ctx context.Context, itemID string, quantity float64) error {
	_, err := c.tx.Exec(ctx, `
		UPDATE inventory_items
		SET quantity = $1,
		    updated_at = now()
		WHERE id = $2
	`, quantity, itemID)

	return err
}

func (c *pgxCookTx) MarkCooked(ctx context.Context, itemID string, at time.Time) error {
	cmd, err := c.tx.Exec(ctx, `
		UPDATE meal_plan_items
		SET cooked = TRUE,
		    cooked_at = $1,
		    updated_at = now()
		WHERE id = $2
		  AND cooked = FALSE
	`, at, itemID)

	if err != nil {
		return err
	}

	// a racing cook of the same meal got here first
	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.CodeMealAlreadyCooked, "meal already cooked")
	}

	return nil
}
