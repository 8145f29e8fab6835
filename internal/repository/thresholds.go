package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const thresholdsCollection = "thresholds"

// ThresholdRepository stores one document per tier, keyed by tier name
type ThresholdRepository struct {
	mongoRepo *MongoRepository
}

func NewThresholdRepository(mongoRepo *MongoRepository) *ThresholdRepository {
	return &ThresholdRepository{
		mongoRepo: mongoRepo,
	}
}

// Thresholds loads a snapshot. Tiers missing from the collection keep their
// defaults; an empty collection returns models.ErrNotFound and a merged
// snapshot that fails validation returns models.ErrInvalidInput.
func (r *ThresholdRepository) Thresholds(ctx context.Context) (models.ThresholdConfig, error) {
	cursor, err := r.mongoRepo.FindMany(ctx, thresholdsCollection, bson.M{})
	if err != nil {
		return models.ThresholdConfig{}, fmt.Errorf("failed to find thresholds: %w", err)
	}
	defer cursor.Close(ctx)

	var tiers []models.Tier
	if err := cursor.All(ctx, &tiers); err != nil {
		return models.ThresholdConfig{}, fmt.Errorf("failed to decode thresholds: %w", err)
	}

	if len(tiers) == 0 {
		return models.ThresholdConfig{}, fmt.Errorf("%w: no thresholds stored", models.ErrNotFound)
	}

	cfg := models.DefaultThresholds()
	for _, t := range tiers {
		if _, err := models.ParseTierName(string(t.Name)); err != nil {
			continue
		}
		cfg = cfg.WithTier(t)
	}

	if err := cfg.Validate(); err != nil {
		return models.ThresholdConfig{}, fmt.Errorf("stored thresholds rejected: %w", err)
	}

	return cfg, nil
}

func (r *ThresholdRepository) UpsertTier(ctx context.Context, tier models.Tier) error {
	if tier.UpdatedAt.IsZero() {
		tier.UpdatedAt = time.Now().UTC()
	}

	filter := bson.M{"_id": tier.Name}
	opts := options.Replace().SetUpsert(true)

	if err := r.mongoRepo.ReplaceOne(ctx, thresholdsCollection, filter, tier, opts); err != nil {
		return fmt.Errorf("failed to upsert threshold %s: %w", tier.Name, err)
	}

	return nil
}
