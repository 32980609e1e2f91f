package database

import (
	"context"
	"regexp"

	"github.com/KadariPavani/placement-training-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BatchStore runs the resolver's lookup ladder against the two batch
// collections.
type BatchStore struct {
	regular   *mongo.Collection
	placement *mongo.Collection
}

func NewBatchStore() *BatchStore {
	return &BatchStore{
		regular:   DB.Collection("batches"),
		placement: DB.Collection("placement_training_batches"),
	}
}

func (s *BatchStore) collection(kind models.BatchKind) *mongo.Collection {
	if kind == models.BatchKindPlacement {
		return s.placement
	}
	return s.regular
}

func (s *BatchStore) FindExact(ctx context.Context, kind models.BatchKind, value string) (*models.BatchRef, error) {
	return s.findOne(ctx, kind, bson.M{"$or": bson.A{
		bson.M{"batchNumber": value},
		bson.M{"name": value},
	}})
}

func (s *BatchStore) FindCaseInsensitive(ctx context.Context, kind models.BatchKind, value string) (*models.BatchRef, error) {
	pattern := "^" + regexp.QuoteMeta(value) + "$"
	return s.findOne(ctx, kind, bson.M{"$or": bson.A{
		bson.M{"batchNumber": primitive.Regex{Pattern: pattern, Options: "i"}},
		bson.M{"name": primitive.Regex{Pattern: pattern, Options: "i"}},
	}})
}

func (s *BatchStore) FindSubstring(ctx context.Context, kind models.BatchKind, value string) (*models.BatchRef, error) {
	pattern := regexp.QuoteMeta(value)
	return s.findOne(ctx, kind, bson.M{"$or": bson.A{
		bson.M{"batchNumber": primitive.Regex{Pattern: pattern, Options: "i"}},
		bson.M{"name": primitive.Regex{Pattern: pattern, Options: "i"}},
	}})
}

func (s *BatchStore) Exists(ctx context.Context, kind models.BatchKind, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	count, err := s.collection(kind).CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *BatchStore) findOne(ctx context.Context, kind models.BatchKind, filter bson.M) (*models.BatchRef, error) {
	result := s.collection(kind).FindOne(ctx, filter)
	if kind == models.BatchKindPlacement {
		var batch models.PlacementTrainingBatch
		if err := result.Decode(&batch); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			return nil, err
		}
		return &models.BatchRef{ID: batch.ID.Hex(), BatchNumber: batch.BatchNumber, Name: batch.Name}, nil
	}
	var batch models.Batch
	if err := result.Decode(&batch); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &models.BatchRef{ID: batch.ID.Hex(), BatchNumber: batch.BatchNumber, Name: batch.Name}, nil
}
