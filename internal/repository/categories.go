package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoriesCollection = "categories"

// CategoryRepository stores the admin-managed content categories
type CategoryRepository struct {
	mongoRepo *MongoRepository
}

func NewCategoryRepository(mongoRepo *MongoRepository) *CategoryRepository {
	return &CategoryRepository{
		mongoRepo: mongoRepo,
	}
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if err := r.mongoRepo.CreateIndexes(ctx, categoriesCollection, indexes); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}
	return nil
}

// List returns every category ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.mongoRepo.FindMany(ctx, categoriesCollection, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.mongoRepo.FindOne(ctx, categoriesCollection, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: category %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) Insert(ctx context.Context, category *models.Category) error {
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	if category.UpdatedAt.IsZero() {
		category.UpdatedAt = category.CreatedAt
	}

	err := r.mongoRepo.InsertOne(ctx, categoriesCollection, category)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: category %q already exists", models.ErrConflict, category.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// Update replaces the name and description of an existing category
func (r *CategoryRepository) Update(ctx context.Context, id string, in models.CategoryInput) error {
	update := bson.M{"$set": bson.M{
		"name":        in.Name,
		"description": in.Description,
		"updated_at":  time.Now().UTC(),
	}}

	matched, err := r.mongoRepo.UpdateOne(ctx, categoriesCollection, bson.M{"_id": id}, update)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: category %q already exists", models.ErrConflict, in.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: category %s", models.ErrNotFound, id)
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.mongoRepo.DeleteOne(ctx, categoriesCollection, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: category %s", models.ErrNotFound, id)
	}

	return nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.mongoRepo.CountDocuments(ctx, categoriesCollection, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return count, nil
}
