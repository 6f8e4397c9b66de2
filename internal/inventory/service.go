package inventory

import (
	"context"
	"strings"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
	"github.com/kbredenberg/mealplanner-sub000/internal/notify"
)

type Service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// --------------------------------------------------
// CRUD (user-facing; the engine mutates quantity elsewhere)
// --------------------------------------------------

func (s *Service) Create(
	ctx context.Context,
	householdID string,
	name string,
	quantity float64,
	unit string,
	category string,
) (*Item, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("item name is required")
	}
	if unit == "" {
		return nil, apperr.Validation("item unit is required")
	}
	if quantity < 0 {
		return nil, apperr.Validation("quantity cannot be negative")
	}

	item := &Item{
		HouseholdID: householdID,
		Name:        name,
		Quantity:    quantity,
		Unit:        unit,
		Category:    category,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Notify(householdID, notify.EventInventoryUpdated, map[string]any{
		"action": notify.ActionAdded,
		"item":   item,
	})

	return item, nil
}

func (s *Service) Get(ctx context.Context, householdID, id string) (*Item, error) {
	return s.repo.Get(ctx, householdID, id)
}

func (s *Service) List(ctx context.Context, householdID string) ([]*Item, error) {
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *Service) Update(
	ctx context.Context,
	householdID string,
	id string,
	name string,
	quantity float64,
	unit string,
	category string,
) (*Item, error) {

	item, err := s.repo.Get(ctx, householdID, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name == "" {
		return nil, apperr.Validation("item name is required")
	}
	if quantity < 0 {
		return nil, apperr.Validation("quantity cannot be negative")
	}

	item.Name = name
	item.Quantity = quantity
	if unit != "" {
		item.Unit = unit
	}
	if category != "" {
		item.Category = category
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Notify(householdID, notify.EventInventoryUpdated, map[string]any{
		"action": notify.ActionUpdated,
		"item":   item,
	})

	return item, nil
}

func (s *Service) Delete(ctx context.Context, householdID, id string) error {
	if err := s.repo.Delete(ctx, householdID, id); err != nil {
		return err
	}

	s.notifier.Notify(householdID, notify.EventInventoryUpdated, map[string]any{
		"action": notify.ActionDeleted,
		"itemId": id,
	})

	return nil
}

// Snapshot exposes current stock keyed by item id for the read-only
// engine components.
func (s *Service) Snapshot(ctx context.Context, householdID string) (map[string]*Item, error) {
	return s.repo.Snapshot(ctx, householdID)
}
