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

const detectionsCollection = "detections"

type DetectionRepository struct {
	mongoRepo *MongoRepository
}

func NewDetectionRepository(mongoRepo *MongoRepository) *DetectionRepository {
	return &DetectionRepository{
		mongoRepo: mongoRepo,
	}
}

func (r *DetectionRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if err := r.mongoRepo.CreateIndexes(ctx, detectionsCollection, indexes); err != nil {
		return fmt.Errorf("failed to create detection indexes: %w", err)
	}
	return nil
}

func (r *DetectionRepository) Insert(ctx context.Context, record *models.DetectionRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	err := r.mongoRepo.InsertOne(ctx, detectionsCollection, record)
	if err != nil {
		return fmt.Errorf("failed to insert detection: %w", err)
	}

	return nil
}

func (r *DetectionRepository) FindByID(ctx context.Context, id string) (*models.DetectionRecord, error) {
	var record models.DetectionRecord
	err := r.mongoRepo.FindOne(ctx, detectionsCollection, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: detection %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find detection: %w", err)
	}

	return &record, nil
}

// ListByUser returns a page of the user's detections, newest first
func (r *DetectionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.DetectionRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

// List returns a page of every user's detections, newest first
func (r *DetectionRepository) List(ctx context.Context, limit, offset int) ([]models.DetectionRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{}, opts)
}

func (r *DetectionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := r.mongoRepo.CountDocuments(ctx, detectionsCollection, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count detections: %w", err)
	}
	return count, nil
}

func (r *DetectionRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.mongoRepo.CountDocuments(ctx, detectionsCollection, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count detections: %w", err)
	}
	return count, nil
}

// ListSince returns every detection created at or after since, oldest first
func (r *DetectionRepository) ListSince(ctx context.Context, since time.Time) ([]models.DetectionRecord, error) {
	filter := bson.M{"created_at": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	return r.find(ctx, filter, opts)
}

func (r *DetectionRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.DetectionRecord, error) {
	cursor, err := r.mongoRepo.FindMany(ctx, detectionsCollection, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find detections: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.DetectionRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode detections: %w", err)
	}

	return records, nil
}
