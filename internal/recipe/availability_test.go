package recipe

import (
	"testing"

	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
)

func strptr(s string) *string { return &s }

func stock(items ...*inventory.Item) map[string]*inventory.Item {
	out := make(map[string]*inventory.Item)
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}

func TestEvaluate_Sufficient(t *testing.T) {
	ingredients := []Ingredient{
		{ID: "ing-1", Name: "Flour", Quantity: 400, Unit: "g", InventoryItemID: strptr("inv-1")},
	}
	snap := stock(&inventory.Item{ID: "inv-1", Name: "Flour", Quantity: 500, Unit: "g"})

	av := Evaluate(ingredients, snap)

	rec := av.Records[0]
	if !rec.Sufficient {
		t.Error("400g against 500g must be sufficient")
	}
	if rec.Available != 500 {
		t.Errorf("expected available 500, got %v", rec.Available)
	}
	if !av.Summary.CanCookRecipe {
		t.Error("expected can_cook_recipe=true")
	}
}

func TestEvaluate_Insufficient(t *testing.T) {
	ingredients := []Ingredient{
		{ID: "ing-1", Name: "Flour", Quantity: 400, Unit: "g", InventoryItemID: strptr("inv-1")},
		{ID: "ing-2", Name: "Sugar", Quantity: 200, Unit: "g", InventoryItemID: strptr("inv-2")},
	}
	snap := stock(
		&inventory.Item{ID: "inv-1", Quantity: 500, Unit: "g"},
		&inventory.Item{ID: "inv-2", Quantity: 50, Unit: "g"},
	)

	av := Evaluate(ingredients, snap)

	if av.Summary.SufficientCount != 1 {
		t.Errorf("expected 1 sufficient, got %d", av.Summary.SufficientCount)
	}
	if av.Summary.MissingCount != 1 {
		t.Errorf("expected 1 missing, got %d", av.Summary.MissingCount)
	}
	if av.Summary.CanCookRecipe {
		t.Error("expected can_cook_recipe=false")
	}
}

func TestEvaluate_UnlinkedIngredient(t *testing.T) {
	// unlinked ingredients are always unavailable, whatever is in stock
	ingredients := []Ingredient{
		{ID: "ing-1", Name: "Saffron", Quantity: 1, Unit: "g"},
	}
	snap := stock(&inventory.Item{ID: "inv-1", Name: "Saffron", Quantity: 100, Unit: "g"})

	av := Evaluate(ingredients, snap)

	rec := av.Records[0]
	if !rec.Unlinked {
		t.Error("expected unlinked flag")
	}
	if rec.Available != 0 || rec.Sufficient {
		t.Errorf("unlinked ingredient must be available=0, sufficient=false; got %+v", rec)
	}
}

func TestEvaluate_MissingInventoryRow(t *testing.T) {
	ingredients := []Ingredient{
		{ID: "ing-1", Name: "Milk", Quantity: 1, Unit: "l", InventoryItemID: strptr("gone")},
	}

	av := Evaluate(ingredients, stock())

	rec := av.Records[0]
	if rec.Available != 0 || rec.Sufficient {
		t.Errorf("missing row must be available=0, sufficient=false; got %+v", rec)
	}
	if rec.Unlinked {
		t.Error("a linked ingredient with a missing row is not 'unlinked'")
	}
}

func TestEvaluate_UnitMismatchFlagged(t *testing.T) {
	// The ingredient's declared unit stays authoritative for the verdict;
	// the mismatch is surfaced as a separate flag.
	ingredients := []Ingredient{
		{ID: "ing-1", Name: "Rice", Quantity: 2, Unit: "cups", InventoryItemID: strptr("inv-1")},
	}
	snap := stock(&inventory.Item{ID: "inv-1", Name: "Rice", Quantity: 3, Unit: "kg"})

	av := Evaluate(ingredients, snap)

	rec := av.Records[0]
	if !rec.Sufficient {
		t.Error("verdict still compares raw quantities (3 >= 2)")
	}
	if !rec.UnitMismatch {
		t.Error("expected unit_mismatch flag")
	}
	if av.Summary.UnitMismatchCount != 1 {
		t.Errorf("expected unit_mismatch_count=1, got %d", av.Summary.UnitMismatchCount)
	}
}

func TestEvaluate_RecordsInIngredientOrder(t *testing.T) {
	ingredients := []Ingredient{
		{ID: "b", Name: "B", Quantity: 1, Unit: "g"},
		{ID: "a", Name: "A", Quantity: 1, Unit: "g"},
	}

	av := Evaluate(ingredients, stock())

	if av.Records[0].IngredientID != "b" || av.Records[1].IngredientID != "a" {
		t.Error("records must preserve ingredient order")
	}
}
