package mealplan

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
	"github.com/kbredenberg/mealplanner-sub000/internal/notify"
	"github.com/kbredenberg/mealplanner-sub000/internal/recipe"
	"github.com/kbredenberg/mealplanner-sub000/internal/units"
)

// RecipeReader is what this package needs from the recipe service.
type RecipeReader interface {
	Get(ctx context.Context, householdID, recipeID string) (*recipe.Recipe, error)
}

// InventoryReader provides read-only stock snapshots.
type InventoryReader interface {
	Snapshot(ctx context.Context, householdID string) (map[string]*inventory.Item, error)
}

type Service struct {
	repo      Repository
	recipes   RecipeReader
	inventory InventoryReader
	notifier  notify.Notifier
	now       func() time.Time
}

func NewService(
	repo Repository,
	recipes RecipeReader,
	inv InventoryReader,
	notifier notify.Notifier,
) *Service {
	return &Service{
		repo:      repo,
		recipes:   recipes,
		inventory: inv,
		notifier:  notifier,
		now:       time.Now,
	}
}

// --------------------------------------------------
// PLAN CRUD
// --------------------------------------------------

func (s *Service) CreatePlan(
	ctx context.Context,
	householdID string,
	name string,
	weekStart time.Time,
) (*MealPlan, error) {

	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("plan name is required")
	}

	p := &MealPlan{
		HouseholdID: householdID,
		Name:        strings.TrimSpace(name),
		WeekStart:   weekStart,
	}

	if err := s.repo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetPlan(ctx context.Context, householdID, planID string) (*MealPlan, error) {
	return s.repo.GetPlan(ctx, householdID, planID)
}

func (s *Service) ListPlans(ctx context.Context, householdID string) ([]*MealPlan, error) {
	return s.repo.ListPlans(ctx, householdID)
}

func (s *Service) ListItems(ctx context.Context, householdID, planID string) ([]*PlanItem, error) {
	if _, err := s.repo.GetPlan(ctx, householdID, planID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, planID)
}

// --------------------------------------------------
// SLOT CRUD
// --------------------------------------------------

func (s *Service) AddItem(
	ctx context.Context,
	householdID string,
	planID string,
	date time.Time,
	mealType MealType,
	recipeID *string,
) (*PlanItem, error) {

	if _, err := s.repo.GetPlan(ctx, householdID, planID); err != nil {
		return nil, err
	}
	if !mealType.Valid() {
		return nil, apperr.Validation("meal type must be BREAKFAST, LUNCH, DINNER or SNACK")
	}
	if recipeID != nil {
		if _, err := s.recipes.Get(ctx, householdID, *recipeID); err != nil {
			return nil, err
		}
	}

	item := &PlanItem{
		MealPlanID: planID,
		Date:       date,
		MealType:   mealType,
		RecipeID:   recipeID,
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Notify(householdID, notify.EventMealPlanUpdated, map[string]any{
		"action": notify.ActionAdded,
		"item":   item,
	})

	return item, nil
}

func (s *Service) UpdateItem(
	ctx context.Context,
	householdID string,
	planID string,
	itemID string,
	date time.Time,
	mealType MealType,
	recipeID *string,
) (*PlanItem, error) {

	if _, err := s.repo.GetPlan(ctx, householdID, planID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, planID, itemID)
	if err != nil {
		return nil, err
	}

	// cooked slots are frozen history
	if item.Cooked {
		return nil, apperr.New(apperr.CodeMealAlreadyCooked, "cooked meals cannot be changed")
	}
	if !mealType.Valid() {
		return nil, apperr.Validation("meal type must be BREAKFAST, LUNCH, DINNER or SNACK")
	}
	if recipeID != nil {
		if _, err := s.recipes.Get(ctx, householdID, *recipeID); err != nil {
			return nil, err
		}
	}

	item.Date = date
	item.MealType = mealType
	item.RecipeID = recipeID

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Notify(householdID, notify.EventMealPlanUpdated, map[string]any{
		"action": notify.ActionUpdated,
		"item":   item,
	})

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, householdID, planID, itemID string) error {
	if _, err := s.repo.GetPlan(ctx, householdID, planID); err != nil {
		return err
	}

	item, err := s.repo.GetItem(ctx, planID, itemID)
	if err != nil {
		return err
	}
	if item.Cooked {
		return apperr.New(apperr.CodeMealAlreadyCooked, "cooked meals cannot be removed")
	}

	if err := s.repo.DeleteItem(ctx, planID, itemID); err != nil {
		return err
	}

	s.notifier.Notify(householdID, notify.EventMealPlanUpdated, map[string]any{
		"action": notify.ActionDeleted,
		"itemId": itemID,
	})

	return nil
}

// --------------------------------------------------
// WEEK REPORT (PURE READ)
// --------------------------------------------------

// WeekReport answers "across this week's uncooked meals, what is short?".
func (s *Service) WeekReport(ctx context.Context, householdID, planID string) (*WeekReport, error) {
	if _, err := s.repo.GetPlan(ctx, householdID, planID); err != nil {
		return nil, err
	}

	meals, err := s.repo.ListUncooked(ctx, planID)
	if err != nil {
		return nil, err
	}

	recipes := make(map[string]*recipe.Recipe)
	for _, meal := range meals {
		if meal.RecipeID == nil {
			continue
		}
		if _, ok := recipes[*meal.RecipeID]; ok {
			continue
		}
		rec, err := s.recipes.Get(ctx, householdID, *meal.RecipeID)
		if err != nil {
			return nil, err
		}
		recipes[*meal.RecipeID] = rec
	}

	stock, err := s.inventory.Snapshot(ctx, householdID)
	if err != nil {
		return nil, err
	}

	return BuildWeekReport(meals, recipes, stock), nil
}

// --------------------------------------------------
// COOK TRANSACTION
// --------------------------------------------------

type InsufficientIngredient struct {
	Name      string  `json:"name"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
	Unit      string  `json:"unit"`
}

type CookResult struct {
	Meal             *PlanItem `json:"meal"`
	InventoryUpdates int       `json:"inventory_update_count"`
}

// demand is the per-inventory-item requirement assembled from the
// recipe's linked ingredients. Duplicate links to the same item sum.
type demand struct {
	name     string
	unit     string
	required float64
}

// CookMeal atomically validates sufficiency for the meal's recipe and, if
// and only if every linked ingredient is sufficient, debits inventory and
// marks the meal cooked. Either every debit and the cooked flag land, or
// nothing does.
func (s *Service) CookMeal(ctx context.Context, householdID, planID, mealID string) (*CookResult, error) {
	if _, err := s.repo.GetPlan(ctx, householdID, planID); err != nil {
		return nil, err
	}

	meal, err := s.repo.GetItem(ctx, planID, mealID)
	if err != nil {
		return nil, err
	}
	if meal.Cooked {
		return nil, apperr.New(apperr.CodeMealAlreadyCooked, "meal already cooked")
	}
	if meal.RecipeID == nil {
		return nil, apperr.New(apperr.CodeNoRecipeAssigned, "no recipe assigned to this meal")
	}

	rec, err := s.recipes.Get(ctx, householdID, *meal.RecipeID)
	if err != nil {
		return nil, err
	}

	demands := make(map[string]*demand)
	var ids []string
	for _, ing := range rec.Ingredients {
		if !ing.Linked() {
			continue
		}
		id := *ing.InventoryItemID
		d, ok := demands[id]
		if !ok {
			d = &demand{name: ing.Name, unit: ing.Unit}
			demands[id] = d
			ids = append(ids, id)
		}
		d.required += ing.Quantity
	}

	// deterministic lock order so two concurrent cooks over overlapping
	// ingredients cannot deadlock
	sort.Strings(ids)

	cookedAt := s.now()
	applied := make(map[string]float64, len(ids))

	err = s.repo.RunCookTx(ctx, func(tx CookTx) error {
		var insufficient []InsufficientIngredient

		type pending struct {
			id  string
			qty float64
		}
		var updates []pending

		for _, id := range ids {
			d := demands[id]

			row, err := tx.LockInventoryItem(ctx, householdID, id)
			if err != nil {
				return err
			}

			var available float64
			if row != nil {
				available = row.Quantity
			}

			if row == nil || available < d.required {
				insufficient = append(insufficient, InsufficientIngredient{
					Name:      d.name,
					Required:  d.required,
					Available: available,
					Unit:      d.unit,
				})
				continue
			}

			updates = append(updates, pending{id: id, qty: units.Debit(available, d.required)})
		}

		// all-or-nothing gate: report every shortfall at once, touch nothing
		if len(insufficient) > 0 {
			return apperr.WithDetails(
				apperr.CodeInsufficientIngredients,
				"not enough ingredients in stock",
				insufficient,
			)
		}

		for _, u := range updates {
			if err := tx.SetInventoryQuantity(ctx, u.id, u.qty); err != nil {
				return err
			}
			applied[u.id] = u.qty
		}

		return tx.MarkCooked(ctx, mealID, cookedAt)
	})
	if err != nil {
		return nil, err
	}

	meal.Cooked = true
	meal.CookedAt = &cookedAt

	for id, qty := range applied {
		s.notifier.Notify(householdID, notify.EventInventoryUpdated, map[string]any{
			"action":   notify.ActionUpdated,
			"itemId":   id,
			"quantity": qty,
		})
	}
	s.notifier.Notify(householdID, notify.EventMealPlanUpdated, map[string]any{
		"action": notify.ActionCooked,
		"item":   meal,
	})

	return &CookResult{Meal: meal, InventoryUpdates: len(applied)}, nil
}
