package recipe

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kbredenberg/mealplanner-sub000/internal/apperr"
	"github.com/kbredenberg/mealplanner-sub000/internal/inventory"
)

// Storage uploads recipe images and returns a public URL.
type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File, contentType string) (string, error)
}

// InventoryReader provides the stock snapshot availability is judged
// against.
type InventoryReader interface {
	Snapshot(ctx context.Context, householdID string) (map[string]*inventory.Item, error)
}

type Service struct {
	repo      Repository
	inventory InventoryReader
	storage   Storage
}

func NewService(repo Repository, inv InventoryReader, storage Storage) *Service {
	return &Service{repo: repo, inventory: inv, storage: storage}
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

type IngredientInput struct {
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	Notes           *string `json:"notes"`
	InventoryItemID *string `json:"inventory_item_id"`
}

func (s *Service) Create(
	ctx context.Context,
	householdID string,
	name string,
	description *string,
	servings int,
	ingredients []IngredientInput,
) (*Recipe, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("recipe name is required")
	}

	rec := &Recipe{
		HouseholdID: householdID,
		Name:        name,
		Description: description,
		Servings:    servings,
	}

	for _, in := range ingredients {
		if strings.TrimSpace(in.Name) == "" {
			return nil, apperr.Validation("ingredient name is required")
		}
		if in.Quantity <= 0 {
			return nil, apperr.Validation("ingredient quantity must be positive")
		}
		rec.Ingredients = append(rec.Ingredients, Ingredient{
			Name:            strings.TrimSpace(in.Name),
			Quantity:        in.Quantity,
			Unit:            in.Unit,
			Notes:           in.Notes,
			InventoryItemID: in.InventoryItemID,
		})
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, householdID, id string) (*Recipe, error) {
	return s.repo.Get(ctx, householdID, id)
}

func (s *Service) List(ctx context.Context, householdID string) ([]*Recipe, error) {
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *Service) Delete(ctx context.Context, householdID, id string) error {
	return s.repo.Delete(ctx, householdID, id)
}

// --------------------------------------------------
// AVAILABILITY (PURE READ)
// --------------------------------------------------

// Availability answers "can this recipe be cooked right now with what is
// in stock?". Recomputed fresh on every call.
func (s *Service) Availability(ctx context.Context, householdID, recipeID string) (*Availability, error) {
	rec, err := s.repo.Get(ctx, householdID, recipeID)
	if err != nil {
		return nil, err
	}

	stock, err := s.inventory.Snapshot(ctx, householdID)
	if err != nil {
		return nil, err
	}

	av := Evaluate(rec.Ingredients, stock)
	return &av, nil
}

// --------------------------------------------------
// IMAGE UPLOAD
// --------------------------------------------------

func (s *Service) UploadImage(
	ctx context.Context,
	householdID string,
	recipeID string,
	file multipart.File,
	filename string,
	contentType string,
) (string, error) {

	if _, err := s.repo.Get(ctx, householdID, recipeID); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", apperr.Validation("invalid file")
	}

	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetImageURL(ctx, householdID, recipeID, url); err != nil {
		return "", err
	}

	return url, nil
}
