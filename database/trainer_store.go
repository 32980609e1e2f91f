package database

import (
	"context"

	"github.com/KadariPavani/placement-training-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TrainerStore struct {
	trainers *mongo.Collection
}

func NewTrainerStore() *TrainerStore {
	return &TrainerStore{trainers: DB.Collection("trainers")}
}

func (s *TrainerStore) FindSubject(ctx context.Context, trainerID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(trainerID)
	if err != nil {
		return "", nil
	}
	var trainer models.Trainer
	err = s.trainers.FindOne(ctx, bson.M{"_id": oid}).Decode(&trainer)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return trainer.Subject, nil
}
