package shopping

import (
	"context"

	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
	"github.com/kbredenberg/mealplanner-sub000/internal/notify"
	"github.com/kbredenberg/mealplanner-sub000/internal/units"
)

// Defaults applied when a completed entry omits fields on conversion.
const (
	defaultQuantity = 1.0
	defaultUnit     = "unit"
	defaultCategory = "Uncategorized"
)

type ConvertedItem struct {
	ShoppingItemID  string  `json:"shopping_item_id"`
	Name            string  `json:"name"`
	Action          string  `json:"action"` // created | updated
	InventoryItemID string  `json:"inventory_item_id"`
	NewQuantity     float64 `json:"new_quantity"`
}

type SkippedItem struct {
	ShoppingItemID string `json:"shopping_item_id"`
	Name           string `json:"name"`
	Reason         string `json:"reason"`
}

type ConvertError struct {
	ShoppingItemID string `json:"shopping_item_id"`
	Name           string `json:"name"`
	Message        string `json:"message"`
}

type ConversionSummary struct {
	TotalRequested int `json:"total_requested"`
	TotalFound     int `json:"total_found"`
	TotalConverted int `json:"total_converted"`
	TotalSkipped   int `json:"total_skipped"`
	TotalErrors    int `json:"total_errors"`
}

type ConversionResult struct {
	Converted []ConvertedItem   `json:"converted"`
	Skipped   []SkippedItem     `json:"skipped"`
	Errors    []ConvertError    `json:"errors"`
	Summary   ConversionSummary `json:"summary"`
}

// ConvertPurchases merges completed shopping entries back into inventory.
// Items are processed independently: one item's failure never aborts its
// siblings, and each item's lookup-then-credit runs in its own small
// transaction.
func (s *Service) ConvertPurchases(
	ctx context.Context,
	householdID string,
	itemIDs []string,
	all bool,
) (*ConversionResult, error) {

	var candidates []*Item
	var err error
	var requested int

	if all {
		candidates, err = s.repo.ListCompleted(ctx, householdID)
		if err != nil {
			return nil, err
		}
		requested = len(candidates)
	} else {
		found, err := s.repo.GetMany(ctx, householdID, itemIDs)
		if err != nil {
			return nil, err
		}
		requested = len(itemIDs)

		// entries that are requested but not completed are silently
		// excluded, not an error
		for _, item := range found {
			if item.Completed {
				candidates = append(candidates, item)
			}
		}
	}

	result := &ConversionResult{
		Converted: []ConvertedItem{},
		Skipped:   []SkippedItem{},
		Errors:    []ConvertError{},
	}
	result.Summary.TotalRequested = requested
	result.Summary.TotalFound = len(candidates)

	for _, entry := range candidates {
		converted, skipped, err := s.convertOne(ctx, householdID, entry)

		switch {
		case err != nil:
			result.Errors = append(result.Errors, ConvertError{
				ShoppingItemID: entry.ID,
				Name:           entry.Name,
				Message:        err.Error(),
			})

		case skipped != nil:
			result.Skipped = append(result.Skipped, *skipped)

		default:
			result.Converted = append(result.Converted, *converted)

			s.notifier.Notify(householdID, notify.EventInventoryUpdated, map[string]any{
				"action":   converted.Action,
				"itemId":   converted.InventoryItemID,
				"quantity": converted.NewQuantity,
			})
			s.notifier.Notify(householdID, notify.EventShoppingListUpdated, map[string]any{
				"action": notify.ActionDeleted,
				"itemId": entry.ID,
			})
		}
	}

	result.Summary.TotalConverted = len(result.Converted)
	result.Summary.TotalSkipped = len(result.Skipped)
	result.Summary.TotalErrors = len(result.Errors)

	return result, nil
}

// convertOne handles a single completed entry inside its own transaction.
// Exactly one of the returns is non-zero.
func (s *Service) convertOne(
	ctx context.Context,
	householdID string,
	entry *Item,
) (*ConvertedItem, *SkippedItem, error) {

	var converted *ConvertedItem
	var skipped *SkippedItem

	err := s.repo.RunConvertTx(ctx, func(tx ConvertTx) error {
		existing, err := tx.LockInventoryByName(ctx, householdID, entry.Name)
		if err != nil {
			return err
		}

		// no stocked item of that name: create one from the entry,
		// filling defaults for anything it omits
		if existing == nil {
			quantity := defaultQuantity
			if entry.Quantity != nil {
				quantity = *entry.Quantity
			}
			unit := defaultUnit
			if entry.Unit != nil && *entry.Unit != "" {
				unit = *entry.Unit
			}
			category := defaultCategory
			if entry.Category != nil && *entry.Category != "" {
				category = *entry.Category
			}

			item := &inventory.Item{
				HouseholdID: householdID,
				Name:        entry.Name,
				Quantity:    quantity,
				Unit:        unit,
				Category:    category,
			}
			if err := tx.CreateInventoryItem(ctx, item); err != nil {
				return err
			}
			if err := tx.DeleteShoppingItem(ctx, householdID, entry.ID); err != nil {
				return err
			}

			converted = &ConvertedItem{
				ShoppingItemID:  entry.ID,
				Name:            entry.Name,
				Action:          "created",
				InventoryItemID: item.ID,
				NewQuantity:     quantity,
			}
			return nil
		}

		// merging needs a quantity on the entry
		if entry.Quantity == nil {
			skipped = &SkippedItem{
				ShoppingItemID: entry.ID,
				Name:           entry.Name,
				Reason:         "Shopping item has no quantity to merge",
			}
			return nil
		}

		// units must agree, except a unit-less purchase merges into
		// whatever unit is stocked
		entryUnit := ""
		if entry.Unit != nil {
			entryUnit = *entry.Unit
		}
		if !units.CombinableLoose(entryUnit, existing.Unit) {
			skipped = &SkippedItem{
				ShoppingItemID: entry.ID,
				Name:           entry.Name,
				Reason:         units.MismatchReason(entryUnit, existing.Unit),
			}
			return nil
		}

		if err := tx.AddInventoryQuantity(ctx, existing.ID, *entry.Quantity); err != nil {
			return err
		}
		if err := tx.DeleteShoppingItem(ctx, householdID, entry.ID); err != nil {
			return err
		}

		converted = &ConvertedItem{
			ShoppingItemID:  entry.ID,
			Name:            entry.Name,
			Action:          "updated",
			InventoryItemID: existing.ID,
			NewQuantity:     existing.Quantity + *entry.Quantity,
		}
		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	return converted, skipped, nil
}
