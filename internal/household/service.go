package household

import (
	"context"
	"strings"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("household name is required")
	}

	h := &Household{Name: name}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Household, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Household, error) {
	return s.repo.List(ctx)
}
