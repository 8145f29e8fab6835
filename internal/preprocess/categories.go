package preprocess

import (
	"context"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CategoryStore persists the admin-managed content categories
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Insert(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id string, in models.CategoryInput) error
	Delete(ctx context.Context, id string) error
}

type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.List(ctx)
}

func (s *CategoryService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.store.Insert(ctx, category); err != nil {
		return nil, err
	}

	log.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, id, in); err != nil {
		return nil, err
	}

	log.Info().Str("category_id", id).Str("name", in.Name).Msg("Category updated")
	return s.store.FindByID(ctx, id)
}

// DeleteCategory removes the category. Works registered under its name keep it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("category_id", id).Msg("Category deleted")
	return nil
}
