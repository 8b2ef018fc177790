package repository

import (
	"context"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRetrievalArchive implements RetrievalArchive
type MongoRetrievalArchive struct {
	collection *mongo.Collection
}

// NewMongoRetrievalArchive creates a new retrieval archive
func NewMongoRetrievalArchive(db *mongo.Database) repository.RetrievalArchive {
	collection := db.Collection("retrievals")

	// Index on confirmationNumber for inspection queries
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"confirmationNumber": 1},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoRetrievalArchive{
		collection: collection,
	}
}

// Save records one retrieval attempt
func (r *MongoRetrievalArchive) Save(ctx context.Context, record *entity.RetrievalRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if record.RetrievedAt.IsZero() {
		record.RetrievedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByConfirmationNumber returns the most recent retrieval attempts for
// a confirmation number
func (r *MongoRetrievalArchive) FindByConfirmationNumber(ctx context.Context, confirmationNumber string, limit int) ([]*entity.RetrievalRecord, error) {
	opts := options.Find().
		SetSort(bson.M{"retrievedAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"confirmationNumber": confirmationNumber}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.RetrievalRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
