package shopping

import (
	"context"

	"github.com/kbredenberg/mealplanner-sub000/internal/notify"
)

type SynthesisResult struct {
	ItemsAdded int     `json:"items_added"`
	Items      []*Item `json:"items"`
}

// Synthesize converts a week's shortfall report into shopping-list
// entries. Items already present as an open entry of the same name are
// skipped, never topped up: the shortfall is recomputed fresh against
// current stock on every run, so re-running while the first run's entries
// are still open adds nothing.
func (s *Service) Synthesize(ctx context.Context, householdID, planID string) (*SynthesisResult, error) {
	report, err := s.weeks.WeekReport(ctx, householdID, planID)
	if err != nil {
		return nil, err
	}

	result := &SynthesisResult{Items: []*Item{}}

	for _, agg := range report.Items {
		if agg.Shortfall <= 0 {
			continue
		}

		exists, err := s.repo.HasIncompleteNamed(ctx, householdID, agg.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		shortfall := agg.Shortfall
		unit := agg.Unit

		item := &Item{
			HouseholdID: householdID,
			Name:        agg.Name,
			Quantity:    &shortfall,
			Unit:        &unit,
		}
		if agg.Category != "" {
			category := agg.Category
			item.Category = &category
		}

		if err := s.repo.Create(ctx, item); err != nil {
			return nil, err
		}

		s.notifier.Notify(householdID, notify.EventShoppingItemAdded, item)

		result.Items = append(result.Items, item)
		result.ItemsAdded++
	}

	return result, nil
}
