package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"logisticshub-service/internal/domain/repository"
	"logisticshub-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoKVStore implements KVStore on a MongoDB collection with one document
// per key
type MongoKVStore struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoKVStore creates a new MongoDB-backed key-value store
func NewMongoKVStore(db *mongo.Database, logger logger.Logger) repository.KVStore {
	return &MongoKVStore{
		collection: db.Collection("kv_store"),
		logger:     logger,
	}
}

// Get reads the value stored under key. Documents written by older tooling
// sometimes carry structured data in the value field instead of encoded
// text, so the read decodes loosely and re-encodes where needed.
func (s *MongoKVStore) Get(ctx context.Context, key string) (repository.ReadResult, error) {
	var doc bson.M
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ReadResult{State: repository.ReadAbsent}, nil
	}
	if err != nil {
		return repository.ReadResult{}, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	switch value := doc["value"].(type) {
	case string:
		return normalizeStoredValue(value), nil
	case nil:
		return repository.ReadResult{State: repository.ReadAbsent}, nil
	default:
		encoded, merr := json.Marshal(value)
		if merr != nil {
			s.logger.Warn("stored value is not encodable", "key", key, "error", merr)
			return repository.ReadResult{State: repository.ReadMalformed, Raw: fmt.Sprintf("%v", value)}, nil
		}
		return normalizeStoredValue(string(encoded)), nil
	}
}

// Set upserts the value stored under key
func (s *MongoKVStore) Set(ctx context.Context, key, value string) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}
