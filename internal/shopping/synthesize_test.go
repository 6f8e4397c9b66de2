package shopping

import (
	"context"
	"testing"

	"github.com/kbredenberg/mealplanner-sub000/internal/mealplan"
)

func weekReport(items ...mealplan.WeekItem) *mealplan.WeekReport {
	return &mealplan.WeekReport{Items: items}
}

func TestSynthesize_CreatesEntriesForShortfalls(t *testing.T) {
	repo := NewMockRepository()
	weeks := &MockWeekReporter{report: weekReport(
		mealplan.WeekItem{InventoryItemID: "inv-1", Name: "Flour", Unit: "cups", Category: "Baking", TotalRequired: 4, Available: 3, Shortfall: 1},
		mealplan.WeekItem{InventoryItemID: "inv-2", Name: "Eggs", Unit: "pieces", TotalRequired: 6, Available: 12, Shortfall: 0, Sufficient: true},
	)}
	notifier := &RecordingNotifier{}
	service := NewService(repo, weeks, notifier)

	result, err := service.Synthesize(context.Background(), "hh-1", "plan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemsAdded != 1 {
		t.Fatalf("only shortfall items synthesize; expected 1, got %d", result.ItemsAdded)
	}

	item := result.Items[0]
	if item.Name != "Flour" {
		t.Errorf("expected Flour, got %s", item.Name)
	}
	if item.Quantity == nil || *item.Quantity != 1 {
		t.Errorf("entry quantity must equal the shortfall, got %v", item.Quantity)
	}
	if item.Unit == nil || *item.Unit != "cups" {
		t.Errorf("expected unit cups, got %v", item.Unit)
	}
	if item.Category == nil || *item.Category != "Baking" {
		t.Errorf("expected category Baking, got %v", item.Category)
	}
	if item.Completed {
		t.Error("synthesized entries start incomplete")
	}
	if notifier.Count("shopping-list:item-added") != 1 {
		t.Error("expected one item-added notification")
	}
}

func TestSynthesize_SkipsOpenEntryOfSameName(t *testing.T) {
	repo := NewMockRepository()
	repo.Create(context.Background(), &Item{
		HouseholdID: "hh-1", Name: "flour", Completed: false,
	})

	weeks := &MockWeekReporter{report: weekReport(
		mealplan.WeekItem{InventoryItemID: "inv-1", Name: "Flour", Unit: "cups", TotalRequired: 4, Available: 3, Shortfall: 1},
	)}
	service := NewService(repo, weeks, &RecordingNotifier{})

	result, err := service.Synthesize(context.Background(), "hh-1", "plan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ItemsAdded != 0 {
		t.Errorf("an open same-name entry blocks synthesis, got %d added", result.ItemsAdded)
	}
}

func TestSynthesize_CompletedEntryDoesNotBlock(t *testing.T) {
	repo := NewMockRepository()
	repo.Create(context.Background(), &Item{
		HouseholdID: "hh-1", Name: "Flour", Completed: true,
	})

	weeks := &MockWeekReporter{report: weekReport(
		mealplan.WeekItem{InventoryItemID: "inv-1", Name: "Flour", Unit: "cups", TotalRequired: 4, Available: 3, Shortfall: 1},
	)}
	service := NewService(repo, weeks, &RecordingNotifier{})

	result, _ := service.Synthesize(context.Background(), "hh-1", "plan-1")

	if result.ItemsAdded != 1 {
		t.Errorf("a completed entry must not block a new one, got %d added", result.ItemsAdded)
	}
}

func TestSynthesize_SecondRunAddsNothing(t *testing.T) {
	repo := NewMockRepository()
	weeks := &MockWeekReporter{report: weekReport(
		mealplan.WeekItem{InventoryItemID: "inv-1", Name: "Flour", Unit: "cups", TotalRequired: 4, Available: 3, Shortfall: 1},
		mealplan.WeekItem{InventoryItemID: "inv-2", Name: "Sugar", Unit: "g", TotalRequired: 200, Available: 0, Shortfall: 200},
	)}
	service := NewService(repo, weeks, &RecordingNotifier{})

	first, err := service.Synthesize(context.Background(), "hh-1", "plan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ItemsAdded != 2 {
		t.Fatalf("expected 2 added on first run, got %d", first.ItemsAdded)
	}

	// same shortfall, first run's entries still open
	second, err := service.Synthesize(context.Background(), "hh-1", "plan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ItemsAdded != 0 {
		t.Errorf("second run must add nothing, got %d", second.ItemsAdded)
	}
}
