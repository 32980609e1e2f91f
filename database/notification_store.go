package database

import (
	"context"

	"github.com/KadariPavani/placement-training-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationStore struct {
	notifications *mongo.Collection
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{notifications: DB.Collection("notifications")}
}

func (s *NotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	_, err := s.notifications.InsertOne(ctx, n)
	return err
}

// ListForBatches returns the most recent notifications addressed to any of
// the given batches.
func (s *NotificationStore) ListForBatches(ctx context.Context, batchIDs []string, limit int64) ([]models.Notification, error) {
	if len(batchIDs) == 0 {
		return []models.Notification{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.notifications.Find(ctx, bson.M{"batchId": bson.M{"$in": batchIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
