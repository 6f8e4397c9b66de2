package mealplan

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
	"github.com/kbredenberg/mealplanner-sub000/internal/recipe"
)

// --------------------------------------------------
// Mock Repository (in-memory, transactional)
// --------------------------------------------------

type MockRepository struct {
	mu        sync.Mutex
	plans     map[string]*MealPlan
	items     map[string]*PlanItem
	inventory map[string]*inventory.Item
	nextID    int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		plans:     make(map[string]*MealPlan),
		items:     make(map[string]*PlanItem),
		inventory: make(map[string]*inventory.Item),
		nextID:    1,
	}
}

func (m *MockRepository) id(prefix string) string {
	id := prefix + "-" + strconv.Itoa(m.nextID)
	m.nextID++
	return id
}

func (m *MockRepository) CreatePlan(ctx context.Context, p *MealPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id("plan")
	p.CreatedAt = time.Now()
	cp := *p
	m.plans[p.ID] = &cp
	return nil
}

func (m *MockRepository) GetPlan(ctx context.Context, householdID, planID string) (*MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[planID]
	if !ok || p.HouseholdID != householdID {
		return nil, apperr.NotFound("meal plan not found")
	}
	cp := *p
	return &cp, nil
}

func (m *MockRepository) ListPlans(ctx context.Context, householdID string) ([]*MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*MealPlan
	for _, p := range m.plans {
		if p.HouseholdID == householdID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) AddItem(ctx context.Context, item *PlanItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id("meal")
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *MockRepository) GetItem(ctx context.Context, planID, itemID string) (*PlanItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok || item.MealPlanID != planID {
		return nil, apperr.New(apperr.CodeMealNotFound, "meal not found")
	}
	cp := *item
	return &cp, nil
}

func (m *MockRepository) UpdateItem(ctx context.Context, item *PlanItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return apperr.New(apperr.CodeMealNotFound, "meal not found")
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *MockRepository) DeleteItem(ctx context.Context, planID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, itemID)
	return nil
}

func (m *MockRepository) ListItems(ctx context.Context, planID string) ([]*PlanItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*PlanItem
	for _, item := range m.items {
		if item.MealPlanID == planID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) ListUncooked(ctx context.Context, planID string) ([]*PlanItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*PlanItem
	for _, item := range m.items {
		if item.MealPlanID == planID && !item.Cooked && item.RecipeID != nil {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

// RunCookTx stages writes and applies them only when fn succeeds,
// mirroring the commit/rollback behavior of the real store.
func (m *MockRepository) RunCookTx(ctx context.Context, fn func(tx CookTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &mockCookTx{repo: m, quantities: make(map[string]float64)}
	if err := fn(tx); err != nil {
		return err
	}

	for id, qty := range tx.quantities {
		m.inventory[id].Quantity = qty
		m.inventory[id].UpdatedAt = time.Now()
	}
	if tx.cookedItem != "" {
		item := m.items[tx.cookedItem]
		item.Cooked = true
		at := tx.cookedAt
		item.CookedAt = &at
	}

	return nil
}

type mockCookTx struct {
	repo       *MockRepository
	quantities map[string]float64
	cookedItem string
	cookedAt   time.Time
	lockErr    error
}

func (t *mockCookTx) LockInventoryItem(ctx context.Context, householdID, itemID string) (*inventory.Item, error) {
	if t.lockErr != nil {
		return nil, t.lockErr
	}
	item, ok := t.repo.inventory[itemID]
	if !ok || item.HouseholdID != householdID {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (t *mockCookTx) SetInventoryQuantity(ctx context.Context, itemID string, quantity float64) error {
	t.quantities[itemID] = quantity
	return nil
}

func (t *mockCookTx) MarkCooked(ctx context.Context, itemID string, at time.Time) error {
	item, ok := t.repo.items[itemID]
	if !ok {
		return apperr.New(apperr.CodeMealNotFound, "meal not found")
	}
	if item.Cooked {
		return apperr.New(apperr.CodeMealAlreadyCooked, "meal already cooked")
	}
	t.cookedItem = itemID
	t.cookedAt = at
	return nil
}

// --------------------------------------------------
// Mock collaborators
// --------------------------------------------------

type MockRecipeReader struct {
	recipes map[string]*recipe.Recipe
}

func (m *MockRecipeReader) Get(ctx context.Context, householdID, recipeID string) (*recipe.Recipe, error) {
	rec, ok := m.recipes[recipeID]
	if !ok {
		return nil, apperr.NotFound("recipe not found")
	}
	return rec, nil
}

type MockInventoryReader struct {
	repo *MockRepository
}

func (m *MockInventoryReader) Snapshot(ctx context.Context, householdID string) (map[string]*inventory.Item, error) {
	m.repo.mu.Lock()
	defer m.repo.mu.Unlock()
	out := make(map[string]*inventory.Item)
	for id, item := range m.repo.inventory {
		if item.HouseholdID == householdID {
			cp := *item
			out[id] = &cp
		}
	}
	return out, nil
}

type RecordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (r *RecordingNotifier) Notify(householdID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *RecordingNotifier) Count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

// --------------------------------------------------
// Fixture helpers
// --------------------------------------------------

func strptr(s string) *string { return &s }

type fixture struct {
	repo     *MockRepository
	recipes  *MockRecipeReader
	notifier *RecordingNotifier
	service  *Service
	plan     *MealPlan
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := NewMockRepository()
	recipes := &MockRecipeReader{recipes: make(map[string]*recipe.Recipe)}
	notifier := &RecordingNotifier{}
	service := NewService(repo, recipes, &MockInventoryReader{repo: repo}, notifier)

	plan := &MealPlan{HouseholdID: "hh-1", Name: "This week", WeekStart: date("2026-08-31")}
	repo.CreatePlan(context.Background(), plan)

	return &fixture{repo: repo, recipes: recipes, notifier: notifier, service: service, plan: plan}
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func (f *fixture) stockItem(id, name string, qty float64, unit string) {
	f.repo.inventory[id] = &inventory.Item{
		ID: id, HouseholdID: "hh-1", Name: name, Quantity: qty, Unit: unit,
	}
}

func (f *fixture) addRecipe(id, name string, ingredients ...recipe.Ingredient) {
	f.recipes.recipes[id] = &recipe.Recipe{
		ID: id, HouseholdID: "hh-1", Name: name, Ingredients: ingredients,
	}
}

func (f *fixture) addMeal(recipeID *string) *PlanItem {
	item := &PlanItem{
		MealPlanID: f.plan.ID,
		Date:       date("2026-09-01"),
		MealType:   Dinner,
		RecipeID:   recipeID,
	}
	f.repo.AddItem(context.Background(), item)
	return item
}

// --------------------------------------------------
// COOK TESTS
// --------------------------------------------------

func TestCookMeal_DebitsInventory(t *testing.T) {
	f := newFixture(t)
	f.stockItem("inv-flour", "Flour", 500, "g")
	f.addRecipe("rec-1", "Bread", recipe.Ingredient{
		Name: "Flour", Quantity: 400, Unit: "g", InventoryItemID: strptr("inv-flour"),
	})
	meal := f.addMeal(strptr("rec-1"))

	result, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := f.repo.inventory["inv-flour"].Quantity; got != 100 {
		t.Errorf("expected 100g left, got %v", got)
	}
	if !result.Meal.Cooked || result.Meal.CookedAt == nil {
		t.Error("expected meal marked cooked with timestamp")
	}
	if result.InventoryUpdates != 1 {
		t.Errorf("expected 1 inventory update, got %d", result.InventoryUpdates)
	}
	if f.notifier.Count("inventory:updated") != 1 {
		t.Error("expected one inventory:updated notification")
	}
	if f.notifier.Count("meal-plan:updated") != 1 {
		t.Error("expected one meal-plan:updated notification")
	}
}

func TestCookMeal_InsufficientLeavesStockUntouched(t *testing.T) {
	f := newFixture(t)
	f.stockItem("inv-flour", "Flour", 300, "g")
	f.addRecipe("rec-1", "Bread", recipe.Ingredient{
		Name: "Flour", Quantity: 400, Unit: "g", InventoryItemID: strptr("inv-flour"),
	})
	meal := f.addMeal(strptr("rec-1"))

	_, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID)
	if !apperr.IsCode(err, apperr.CodeInsufficientIngredients) {
		t.Fatalf("expected INSUFFICIENT_INGREDIENTS, got %v", err)
	}

	if got := f.repo.inventory["inv-flour"].Quantity; got != 300 {
		t.Errorf("stock must be unchanged, got %v", got)
	}

	stored, _ := f.repo.GetItem(context.Background(), f.plan.ID, meal.ID)
	if stored.Cooked {
		t.Error("meal must remain uncooked")
	}
	if f.notifier.Count("inventory:updated") != 0 {
		t.Error("no notifications on a refused cook")
	}
}

func TestCookMeal_AllOrNothing(t *testing.T) {
	// one of two linked ingredients short: neither stock is touched
	f := newFixture(t)
	f.stockItem("inv-flour", "Flour", 500, "g")
	f.stockItem("inv-sugar", "Sugar", 10, "g")
	f.addRecipe("rec-1", "Cake",
		recipe.Ingredient{Name: "Flour", Quantity: 400, Unit: "g", InventoryItemID: strptr("inv-flour")},
		recipe.Ingredient{Name: "Sugar", Quantity: 200, Unit: "g", InventoryItemID: strptr("inv-sugar")},
	)
	meal := f.addMeal(strptr("rec-1"))

	_, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID)
	if !apperr.IsCode(err, apperr.CodeInsufficientIngredients) {
		t.Fatalf("expected INSUFFICIENT_INGREDIENTS, got %v", err)
	}

	if f.repo.inventory["inv-flour"].Quantity != 500 {
		t.Error("flour must be untouched")
	}
	if f.repo.inventory["inv-sugar"].Quantity != 10 {
		t.Error("sugar must be untouched")
	}

	stored, _ := f.repo.GetItem(context.Background(), f.plan.ID, meal.ID)
	if stored.Cooked {
		t.Error("cooked must remain false")
	}
}

func TestCookMeal_ReportsAllShortfallsAtOnce(t *testing.T) {
	f := newFixture(t)
	f.stockItem("inv-flour", "Flour", 100, "g")
	// sugar missing from inventory entirely
	f.addRecipe("rec-1", "Cake",
		recipe.Ingredient{Name: "Flour", Quantity: 400, Unit: "g", InventoryItemID: strptr("inv-flour")},
		recipe.Ingredient{Name: "Sugar", Quantity: 200, Unit: "g", InventoryItemID: strptr("inv-sugar")},
	)
	meal := f.addMeal(strptr("rec-1"))

	_, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID)

	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected apperr.Error, got %v", err)
	}

	list, ok := e.Details.([]InsufficientIngredient)
	if !ok {
		t.Fatalf("expected insufficient list in details, got %T", e.Details)
	}
	if len(list) != 2 {
		t.Fatalf("expected both shortfalls reported, got %d", len(list))
	}

	// the missing row reports available=0
	for _, ins := range list {
		if ins.Name == "Sugar" && ins.Available != 0 {
			t.Errorf("missing row must report available=0, got %v", ins.Available)
		}
	}
}

func TestCookMeal_PreconditionCodes(t *testing.T) {
	f := newFixture(t)
	f.addRecipe("rec-1", "Toast", recipe.Ingredient{Name: "Bread", Quantity: 2, Unit: "slices"})

	// meal not found
	_, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, "missing")
	if !apperr.IsCode(err, apperr.CodeMealNotFound) {
		t.Errorf("expected MEAL_NOT_FOUND, got %v", err)
	}

	// no recipe assigned
	empty := f.addMeal(nil)
	_, err = f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, empty.ID)
	if !apperr.IsCode(err, apperr.CodeNoRecipeAssigned) {
		t.Errorf("expected NO_RECIPE_ASSIGNED, got %v", err)
	}

	// already cooked (recipe has only unlinked ingredients, so it cooks through)
	meal := f.addMeal(strptr("rec-1"))
	if _, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID); err != nil {
		t.Fatalf("first cook failed: %v", err)
	}
	_, err = f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID)
	if !apperr.IsCode(err, apperr.CodeMealAlreadyCooked) {
		t.Errorf("expected MEAL_ALREADY_COOKED, got %v", err)
	}
}

func TestCookMeal_SumsDuplicateLinks(t *testing.T) {
	// two ingredients linked to the same inventory item debit once, summed
	f := newFixture(t)
	f.stockItem("inv-butter", "Butter", 100, "g")
	f.addRecipe("rec-1", "Pastry",
		recipe.Ingredient{Name: "Butter (dough)", Quantity: 40, Unit: "g", InventoryItemID: strptr("inv-butter")},
		recipe.Ingredient{Name: "Butter (glaze)", Quantity: 10, Unit: "g", InventoryItemID: strptr("inv-butter")},
	)
	meal := f.addMeal(strptr("rec-1"))

	result, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.repo.inventory["inv-butter"].Quantity; got != 50 {
		t.Errorf("expected 50g left, got %v", got)
	}
	if result.InventoryUpdates != 1 {
		t.Errorf("expected a single inventory update, got %d", result.InventoryUpdates)
	}
}

// --------------------------------------------------
// WEEK REPORT TESTS
// --------------------------------------------------

func TestWeekReport_MergesAcrossMeals(t *testing.T) {
	f := newFixture(t)
	f.stockItem("inv-flour", "Flour", 3, "cups")
	f.addRecipe("rec-1", "Pancakes", recipe.Ingredient{
		Name: "Flour", Quantity: 2, Unit: "cups", InventoryItemID: strptr("inv-flour"),
	})
	f.addRecipe("rec-2", "Crepes", recipe.Ingredient{
		Name: "Flour", Quantity: 2, Unit: "cups", InventoryItemID: strptr("inv-flour"),
	})
	f.addMeal(strptr("rec-1"))
	f.addMeal(strptr("rec-2"))

	report, err := f.service.WeekReport(context.Background(), "hh-1", f.plan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Items) != 1 {
		t.Fatalf("expected demand merged into one item, got %d", len(report.Items))
	}

	item := report.Items[0]
	if item.TotalRequired != 4 {
		t.Errorf("expected total_required=4, got %v", item.TotalRequired)
	}
	if item.Shortfall != 1 {
		t.Errorf("expected shortfall=1, got %v", item.Shortfall)
	}
	if len(item.Meals) != 2 {
		t.Errorf("expected 2 trace entries, got %d", len(item.Meals))
	}
	if item.Sufficient {
		t.Error("4 required vs 3 stocked must be insufficient")
	}
}

func TestWeekReport_SkipsCookedAndRecipeless(t *testing.T) {
	f := newFixture(t)
	f.stockItem("inv-rice", "Rice", 10, "cups")
	f.addRecipe("rec-1", "Rice bowl", recipe.Ingredient{
		Name: "Rice", Quantity: 2, Unit: "cups", InventoryItemID: strptr("inv-rice"),
	})

	cooked := f.addMeal(strptr("rec-1"))
	f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, cooked.ID)
	f.addMeal(nil)
	f.addMeal(strptr("rec-1"))

	report, err := f.service.WeekReport(context.Background(), "hh-1", f.plan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Items) != 1 {
		t.Fatalf("expected 1 aggregated item, got %d", len(report.Items))
	}
	if got := report.Items[0].TotalRequired; got != 2 {
		t.Errorf("only the uncooked meal with a recipe counts; expected 2, got %v", got)
	}
}

func TestWeekReport_DropsUnlinkedButCountsThem(t *testing.T) {
	f := newFixture(t)
	f.addRecipe("rec-1", "Soup",
		recipe.Ingredient{Name: "Stock", Quantity: 1, Unit: "l"},
		recipe.Ingredient{Name: "Salt", Quantity: 5, Unit: "g"},
	)
	f.addMeal(strptr("rec-1"))

	report, err := f.service.WeekReport(context.Background(), "hh-1", f.plan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Items) != 0 {
		t.Errorf("unlinked ingredients must not be aggregated, got %d items", len(report.Items))
	}
	if report.Summary.UnlinkedIngredients != 2 {
		t.Errorf("expected 2 unlinked flagged in summary, got %d", report.Summary.UnlinkedIngredients)
	}
}

func TestWeekReport_IsPureRead(t *testing.T) {
	f := newFixture(t)
	f.stockItem("inv-flour", "Flour", 3, "cups")
	f.addRecipe("rec-1", "Pancakes", recipe.Ingredient{
		Name: "Flour", Quantity: 2, Unit: "cups", InventoryItemID: strptr("inv-flour"),
	})
	f.addMeal(strptr("rec-1"))

	if _, err := f.service.WeekReport(context.Background(), "hh-1", f.plan.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.repo.inventory["inv-flour"].Quantity != 3 {
		t.Error("week report must not mutate inventory")
	}
	if f.notifier.Count("inventory:updated") != 0 {
		t.Error("week report must not notify")
	}
}

// --------------------------------------------------
// SLOT RULES
// --------------------------------------------------

func TestDeleteItem_CookedSlotRejected(t *testing.T) {
	f := newFixture(t)
	f.addRecipe("rec-1", "Toast", recipe.Ingredient{Name: "Bread", Quantity: 2, Unit: "slices"})
	meal := f.addMeal(strptr("rec-1"))

	if _, err := f.service.CookMeal(context.Background(), "hh-1", f.plan.ID, meal.ID); err != nil {
		t.Fatalf("cook failed: %v", err)
	}

	err := f.service.DeleteItem(context.Background(), "hh-1", f.plan.ID, meal.ID)
	if !apperr.IsCode(err, apperr.CodeMealAlreadyCooked) {
		t.Errorf("expected MEAL_ALREADY_COOKED, got %v", err)
	}
}
