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

const contentsCollection = "content_entries"

// ContentRepository stores registered works, the corpus every registry detection scans
type ContentRepository struct {
	mongoRepo *MongoRepository
}

func NewContentRepository(mongoRepo *MongoRepository) *ContentRepository {
	return &ContentRepository{
		mongoRepo: mongoRepo,
	}
}

// EnsureIndexes creates the unique certificate index plus the digest and owner lookup indexes
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "certificate_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "fingerprint.digest", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if err := r.mongoRepo.CreateIndexes(ctx, contentsCollection, indexes); err != nil {
		return fmt.Errorf("failed to create content indexes: %w", err)
	}
	return nil
}

func (r *ContentRepository) Insert(ctx context.Context, record *models.ContentRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	err := r.mongoRepo.InsertOne(ctx, contentsCollection, record)
	if err != nil {
		return fmt.Errorf("failed to insert content record: %w", err)
	}

	return nil
}

// ListRecords returns the whole corpus in insertion order
func (r *ContentRepository) ListRecords(ctx context.Context) ([]models.ContentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.mongoRepo.FindMany(ctx, contentsCollection, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find content records: %v", models.ErrCorpusUnavailable, err)
	}
	defer cursor.Close(ctx)

	records := make([]models.ContentRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode content records: %v", models.ErrCorpusUnavailable, err)
	}

	return records, nil
}

func (r *ContentRepository) FindByCertificateID(ctx context.Context, certificateID string) (*models.ContentRecord, error) {
	filter := bson.M{"certificate_id": certificateID}

	var record models.ContentRecord
	err := r.mongoRepo.FindOne(ctx, contentsCollection, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: certificate %s", models.ErrNotFound, certificateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find content record: %w", err)
	}

	return &record, nil
}

func (r *ContentRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.mongoRepo.CountDocuments(ctx, contentsCollection, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count content records: %w", err)
	}

	return count, nil
}

// ListByOwner returns a page of the owner's works, newest first. Fingerprints
// are not loaded.
func (r *ContentRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]models.ContentRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"fingerprint": 0})

	cursor, err := r.mongoRepo.FindMany(ctx, contentsCollection, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find content records: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.ContentRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode content records: %w", err)
	}

	return records, nil
}

func (r *ContentRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	count, err := r.mongoRepo.CountDocuments(ctx, contentsCollection, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count content records: %w", err)
	}

	return count, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*models.ContentRecord, error) {
	var record models.ContentRecord
	err := r.mongoRepo.FindOne(ctx, contentsCollection, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: content %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find content record: %w", err)
	}

	return &record, nil
}

// Delete removes a registered work. Its certificate stops verifying and the
// work leaves the registry corpus.
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.mongoRepo.DeleteOne(ctx, contentsCollection, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete content record: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: content %s", models.ErrNotFound, id)
	}

	return nil
}
