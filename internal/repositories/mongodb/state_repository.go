package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/bingo-caller/internal/models"
	"github.com/ArowuTest/bingo-caller/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StateRepository implements the repositories.StateStore interface
type StateRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(db *mongo.Database, collection string) *StateRepository {
	return &StateRepository{
		collection: db.Collection(collection),
		now:        time.Now,
	}
}

// EnsureIndexes creates the unique key index and the TTL index that lets
// MongoDB purge expired games.
func (r *StateRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create state indexes: %w", err)
	}
	return nil
}

// Load finds an unexpired state by key.
// The TTL monitor runs about once a minute, so expiry is also checked here.
func (r *StateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	filter := bson.M{
		"key": key,
		"$or": bson.A{
			bson.M{"expiresAt": bson.M{"$gt": r.now()}},
			bson.M{"expiresAt": bson.M{"$exists": false}},
		},
	}

	var state models.StoredState
	err := r.collection.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to find state %s: %w", key, err)
	}
	return []byte(state.Payload), nil
}

// Save upserts the state for key
func (r *StateRepository) Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	now := r.now()
	set := bson.M{
		"payload":   string(payload),
		"updatedAt": now,
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"key":       key,
			"createdAt": now,
		},
	}
	if ttl > 0 {
		set["expiresAt"] = now.Add(ttl)
	} else {
		update["$unset"] = bson.M{"expiresAt": ""}
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"key": key}, update, opts); err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// Delete deletes the state for key
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}
