package repository

import (
	"context"
	"testing"
	"time"

	mongoInfra "github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/infra/mongo"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockRepo(mt *mtest.T) *MongoRepository {
	return NewMongoRepository(&mongoInfra.Client{Client: mt.Client, Database: mt.DB})
}

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func TestContentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("insert sets created_at", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		record := &models.ContentRecord{ID: "c1", Title: "Poem", CertificateID: "CERT-1"}
		require.NoError(mt, NewContentRepository(newMockRepo(mt)).Insert(context.Background(), record))
		assert.False(mt, record.CreatedAt.IsZero())
	})

	mt.Run("insert duplicate certificate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := NewContentRepository(newMockRepo(mt)).Insert(context.Background(), &models.ContentRecord{ID: "c1"})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("list records", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "c1"},
				{Key: "title", Value: "Poem"},
				{Key: "raw_text", Value: "roses are red"},
				{Key: "fingerprint", Value: bson.D{
					{Key: "digest", Value: "abc"},
					{Key: "term_frequencies", Value: bson.D{{Key: "roses", Value: 0.5}, {Key: "red", Value: 0.5}}},
				}},
				{Key: "certificate_id", Value: "CERT-1"},
				{Key: "created_at", Value: created},
			},
			bson.D{{Key: "_id", Value: "c2"}, {Key: "title", Value: "Essay"}},
		))

		records, err := NewContentRepository(newMockRepo(mt)).ListRecords(context.Background())
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, "abc", records[0].Fingerprint.Digest)
		assert.Equal(mt, 0.5, records[0].Fingerprint.TermFrequencies["roses"])
		assert.Equal(mt, created, records[0].CreatedAt.UTC())
		assert.Equal(mt, "Essay", records[1].Title)
	})

	mt.Run("list records failure is corpus unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "errmsg", Value: "node is recovering"}})

		_, err := NewContentRepository(newMockRepo(mt)).ListRecords(context.Background())
		assert.ErrorIs(mt, err, models.ErrCorpusUnavailable)
	})

	mt.Run("find by certificate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "c1"}, {Key: "owner_id", Value: "u1"}, {Key: "certificate_id", Value: "CERT-1"}},
		))

		record, err := NewContentRepository(newMockRepo(mt)).FindByCertificateID(context.Background(), "CERT-1")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", record.OwnerID)
	})

	mt.Run("find by certificate not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch))

		_, err := NewContentRepository(newMockRepo(mt)).FindByCertificateID(context.Background(), "CERT-X")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(7)}},
		))

		count, err := NewContentRepository(newMockRepo(mt)).Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), count)
	})
}

func TestContentRepository_Ownership(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	contentDoc := func(id string) bson.D {
		return bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Poem"},
			{Key: "owner_id", Value: "u1"},
			{Key: "raw_text", Value: "roses are red"},
			{Key: "certificate_id", Value: "CERT-" + id},
			{Key: "created_at", Value: created},
		}
	}

	mt.Run("list by owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch,
			contentDoc("c2"), contentDoc("c1"),
		))

		records, err := NewContentRepository(newMockRepo(mt)).ListByOwner(context.Background(), "u1", 20, 0)
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, "c2", records[0].ID)
		assert.Equal(mt, "u1", records[0].OwnerID)
	})

	mt.Run("count by owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(2)}},
		))

		count, err := NewContentRepository(newMockRepo(mt)).CountByOwner(context.Background(), "u1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), count)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch, contentDoc("c1")))

		record, err := NewContentRepository(newMockRepo(mt)).FindByID(context.Background(), "c1")
		require.NoError(mt, err)
		assert.Equal(mt, "CERT-c1", record.CertificateID)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contentsCollection), mtest.FirstBatch))

		_, err := NewContentRepository(newMockRepo(mt)).FindByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, NewContentRepository(newMockRepo(mt)).Delete(context.Background(), "c1"))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewContentRepository(newMockRepo(mt)).Delete(context.Background(), "missing")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})
}

func TestCategoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, categoriesCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "cat-2"}, {Key: "name", Value: "Essays"}},
			bson.D{{Key: "_id", Value: "cat-1"}, {Key: "name", Value: "Poetry"}, {Key: "description", Value: "verse"}},
		))

		categories, err := NewCategoryRepository(newMockRepo(mt)).List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, categories, 2)
		assert.Equal(mt, "Essays", categories[0].Name)
		assert.Equal(mt, "verse", categories[1].Description)
	})

	mt.Run("insert duplicate name is a conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := NewCategoryRepository(newMockRepo(mt)).Insert(context.Background(), &models.Category{ID: "cat-3", Name: "Poetry"})
		assert.ErrorIs(mt, err, models.ErrConflict)
	})

	mt.Run("insert sets timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		category := &models.Category{ID: "cat-3", Name: "Lyrics"}
		require.NoError(mt, NewCategoryRepository(newMockRepo(mt)).Insert(context.Background(), category))
		assert.False(mt, category.CreatedAt.IsZero())
		assert.Equal(mt, category.CreatedAt, category.UpdatedAt)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := NewCategoryRepository(newMockRepo(mt)).Update(context.Background(), "missing", models.CategoryInput{Name: "X"})
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := NewCategoryRepository(newMockRepo(mt)).Update(context.Background(), "cat-1", models.CategoryInput{Name: "Poems"})
		assert.NoError(mt, err)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewCategoryRepository(newMockRepo(mt)).Delete(context.Background(), "missing")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, categoriesCollection), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(4)}},
		))

		count, err := NewCategoryRepository(newMockRepo(mt)).Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), count)
	})
}

func TestThresholdRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty collection is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, thresholdsCollection), mtest.FirstBatch))

		_, err := NewThresholdRepository(newMockRepo(mt)).Thresholds(context.Background())
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("stored tiers override defaults", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, thresholdsCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "high"},
				{Key: "min_score", Value: 0.8},
				{Key: "max_score", Value: 1.0},
				{Key: "semantic_weight", Value: 0.5},
				{Key: "structural_weight", Value: 0.25},
				{Key: "hash_weight", Value: 0.25},
			},
			bson.D{{Key: "_id", Value: "unknown"}, {Key: "min_score", Value: 0.1}},
		))

		cfg, err := NewThresholdRepository(newMockRepo(mt)).Thresholds(context.Background())
		require.NoError(mt, err)

		assert.Equal(mt, 0.8, cfg.High.MinScore)
		assert.Equal(mt, 0.5, cfg.High.Weights.Semantic)
		assert.Equal(mt, models.DefaultThresholds().Partial, cfg.Partial)
		assert.Equal(mt, models.DefaultThresholds().Original, cfg.Original)
	})

	mt.Run("overlapping stored tiers are rejected", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, thresholdsCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "high"},
				{Key: "min_score", Value: 0.5},
				{Key: "max_score", Value: 1.0},
				{Key: "semantic_weight", Value: 0.4},
				{Key: "structural_weight", Value: 0.3},
				{Key: "hash_weight", Value: 0.3},
			},
		))

		_, err := NewThresholdRepository(newMockRepo(mt)).Thresholds(context.Background())
		assert.ErrorIs(mt, err, models.ErrInvalidInput)
	})

	mt.Run("upsert tier", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		tier := models.DefaultThresholds().Partial
		require.NoError(mt, NewThresholdRepository(newMockRepo(mt)).UpsertTier(context.Background(), tier))
	})
}

func TestDetectionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	detectionDoc := func(id string) bson.D {
		return bson.D{
			{Key: "_id", Value: id},
			{Key: "user_id", Value: "u1"},
			{Key: "created_at", Value: created},
			{Key: "similarity_score", Value: 0.75},
			{Key: "match_level", Value: "High Match"},
			{Key: "source", Value: "registry"},
			{Key: "total_matches", Value: 1},
			{Key: "matched_sources", Value: bson.A{
				bson.D{{Key: "source", Value: "registry"}, {Key: "title", Value: "Poem"}, {Key: "similarity_score", Value: 0.75}},
			}},
		}
	}

	mt.Run("find by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, detectionsCollection), mtest.FirstBatch, detectionDoc("d1")))

		record, err := NewDetectionRepository(newMockRepo(mt)).FindByID(context.Background(), "d1")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", record.UserID)
		assert.Equal(mt, models.MatchHigh, record.MatchLevel)
		require.Len(mt, record.MatchedSources, 1)
		assert.Equal(mt, "Poem", record.MatchedSources[0].Title)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, detectionsCollection), mtest.FirstBatch))

		_, err := NewDetectionRepository(newMockRepo(mt)).FindByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("list by user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, detectionsCollection), mtest.FirstBatch,
			detectionDoc("d2"), detectionDoc("d1"),
		))

		records, err := NewDetectionRepository(newMockRepo(mt)).ListByUser(context.Background(), "u1", 20, 0)
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, "d2", records[0].ID)
	})

	mt.Run("list all", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, detectionsCollection), mtest.FirstBatch,
			detectionDoc("d3"), detectionDoc("d2"),
		))

		records, err := NewDetectionRepository(newMockRepo(mt)).List(context.Background(), 50, 0)
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, "d3", records[0].ID)
	})

	mt.Run("list since empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, detectionsCollection), mtest.FirstBatch))

		records, err := NewDetectionRepository(newMockRepo(mt)).ListSince(context.Background(), created)
		require.NoError(mt, err)
		assert.NotNil(mt, records)
		assert.Empty(mt, records)
	})

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		record := &models.DetectionRecord{ID: "d3", UserID: "u1"}
		require.NoError(mt, NewDetectionRepository(newMockRepo(mt)).Insert(context.Background(), record))
		assert.False(mt, record.CreatedAt.IsZero())
	})
}
