package repository

import (
	"context"

	mongoInfra "github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/infra/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(client *mongoInfra.Client) *MongoRepository {
	return &MongoRepository{
		db: client.Database,
	}
}

func (r *MongoRepository) InsertOne(ctx context.Context, collection string, document interface{}, opts ...*options.InsertOneOptions) error {
	_, err := r.db.Collection(collection).InsertOne(ctx, document, opts...)
	return err
}

func (r *MongoRepository) FindOne(ctx context.Context, collection string, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	return r.db.Collection(collection).FindOne(ctx, filter, opts...)
}

func (r *MongoRepository) FindMany(ctx context.Context, collection string, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	return r.db.Collection(collection).Find(ctx, filter, opts...)
}

func (r *MongoRepository) CountDocuments(ctx context.Context, collection string, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return r.db.Collection(collection).CountDocuments(ctx, filter, opts...)
}

func (r *MongoRepository) ReplaceOne(ctx context.Context, collection string, filter, replacement interface{}, opts ...*options.ReplaceOptions) error {
	_, err := r.db.Collection(collection).ReplaceOne(ctx, filter, replacement, opts...)
	return err
}

func (r *MongoRepository) UpdateOne(ctx context.Context, collection string, filter, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	result, err := r.db.Collection(collection).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *MongoRepository) DeleteOne(ctx context.Context, collection string, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	result, err := r.db.Collection(collection).DeleteOne(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoRepository) CreateIndexes(ctx context.Context, collection string, indexes []mongo.IndexModel) error {
	_, err := r.db.Collection(collection).Indexes().CreateMany(ctx, indexes)
	return err
}
