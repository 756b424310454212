package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRecord struct {
	ShortCode string    `bson:"_id"`
	LongURL   string    `bson:"long_url"`
	CreatedAt time.Time `bson:"created_at"`
}

// MongoStore is a MongoDB implementation of Store. One document per code,
// with the code as the document id so uniqueness is enforced by the server.
type MongoStore struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoStore creates a new MongoDB-backed URL store. Every operation is
// bounded by the given timeout.
func NewMongoStore(collection *mongo.Collection, timeout time.Duration) *MongoStore {
	return &MongoStore{
		collection: collection,
		timeout:    timeout,
	}
}

func (m *MongoStore) Put(ctx context.Context, code, longURL string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.collection.InsertOne(ctx, mongoRecord{
		ShortCode: code,
		LongURL:   longURL,
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		stored, getErr := m.get(ctx, code)
		if getErr != nil {
			return getErr
		}

		if stored != longURL {
			return ErrCodeTaken
		}

		return nil
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (m *MongoStore) Get(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return m.get(ctx, code)
}

func (m *MongoStore) get(ctx context.Context, code string) (string, error) {
	var record mongoRecord

	err := m.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return record.LongURL, nil
}

func (m *MongoStore) Exists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	count, err := m.collection.CountDocuments(ctx, bson.M{"_id": code})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return count > 0, nil
}

// Ping checks MongoDB connectivity.
func (m *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.collection.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}
