package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store using MongoDB.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a Store backed by the given database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func mongoFilter(filters []Filter) (bson.M, error) {
	query := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case OpEqual:
			query[f.Field] = f.Value
		case OpGreater:
			query[f.Field] = bson.M{"$gt": f.Value}
		case OpGreaterOrEqual:
			query[f.Field] = bson.M{"$gte": f.Value}
		case OpLess:
			query[f.Field] = bson.M{"$lt": f.Value}
		case OpLessOrEqual:
			query[f.Field] = bson.M{"$lte": f.Value}
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return query, nil
}

// Find retrieves all documents matching the filters, optionally ordered.
func (s *MongoStore) Find(ctx context.Context, collection string, filters []Filter, order *Order, out any) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	query, err := mongoFilter(filters)
	if err != nil {
		return err
	}

	opts := options.Find()
	if order != nil {
		direction := 1
		if order.Descending {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: order.Field, Value: direction}})
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}
	return nil
}

// Get retrieves a single document by its id field.
func (s *MongoStore) Get(ctx context.Context, collection, id string, out any) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	err := s.db.Collection(collection).FindOne(ctx, bson.M{"id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s document %s: %w", collection, id, err)
	}
	return nil
}

// Insert writes a new document, generating an id when the document carries
// none, and returns the id.
func (s *MongoStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s document: %w", collection, err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("failed to encode %s document: %w", collection, err)
	}

	id, _ := m["id"].(string)
	if id == "" {
		id = uuid.New().String()
		m["id"] = id
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

// Delete removes a document by its id field. Deleting an absent document is
// not an error.
func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete %s document %s: %w", collection, id, err)
	}
	return nil
}
