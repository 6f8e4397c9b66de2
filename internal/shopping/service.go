package shopping

import (
	"context"
	"strings"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
	"github.com/kbredenberg/mealplanner-sub000/internal/mealplan"
	"github.com/kbredenberg/mealplanner-sub000/internal/notify"
)

// WeekReporter is what this package needs from the meal-plan service:
// the aggregated shortfall report synthesis works from.
type WeekReporter interface {
	WeekReport(ctx context.Context, householdID, planID string) (*mealplan.WeekReport, error)
}

type Service struct {
	repo     Repository
	weeks    WeekReporter
	notifier notify.Notifier
}

func NewService(repo Repository, weeks WeekReporter, notifier notify.Notifier) *Service {
	return &Service{repo: repo, weeks: weeks, notifier: notifier}
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (s *Service) Create(
	ctx context.Context,
	householdID string,
	name string,
	quantity *float64,
	unit *string,
	category *string,
) (*Item, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("item name is required")
	}
	if quantity != nil && *quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
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

	s.notifier.Notify(householdID, notify.EventShoppingItemAdded, item)

	return item, nil
}

func (s *Service) List(ctx context.Context, householdID string) ([]*Item, error) {
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *Service) Update(
	ctx context.Context,
	householdID string,
	id string,
	name string,
	quantity *float64,
	unit *string,
	category *string,
	completed bool,
) (*Item, error) {

	item, err := s.repo.Get(ctx, householdID, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name == "" {
		return nil, apperr.Validation("item name is required")
	}
	if quantity != nil && *quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}

	item.Name = name
	item.Quantity = quantity
	item.Unit = unit
	item.Category = category
	item.Completed = completed

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Notify(householdID, notify.EventShoppingListUpdated, item)

	return item, nil
}

func (s *Service) Delete(ctx context.Context, householdID, id string) error {
	if err := s.repo.Delete(ctx, householdID, id); err != nil {
		return err
	}

	s.notifier.Notify(householdID, notify.EventShoppingListUpdated, map[string]any{
		"action": notify.ActionDeleted,
		"itemId": id,
	})

	return nil
}
