package database

import (
	"context"

	"github.com/KadariPavani/placement-training-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type StudentStore struct {
	students *mongo.Collection
}

func NewStudentStore() *StudentStore {
	return &StudentStore{students: DB.Collection("students")}
}

func (s *StudentStore) FindAccess(ctx context.Context, studentID string) (*models.StudentAccess, error) {
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, nil
	}
	var access models.StudentAccess
	err = s.students.FindOne(ctx, bson.M{"_id": oid}).Decode(&access)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &access, nil
}

// FindBatchMembership returns the student's batch ids keyed for the
// notification hub.
func (s *StudentStore) FindBatchMembership(ctx context.Context, studentID string) (batchID, placementBatchID string, err error) {
	access, err := s.FindAccess(ctx, studentID)
	if err != nil || access == nil {
		return "", "", err
	}
	return access.BatchID, access.PlacementTrainingBatchID, nil
}

// ListEmailsByBatch returns member emails for best-effort email fan-out.
func (s *StudentStore) ListEmailsByBatch(ctx context.Context, batchID string) ([]string, error) {
	cursor, err := s.students.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"batchId": batchID},
		bson.M{"placementTrainingBatchId": batchID},
	}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var emails []string
	for cursor.Next(ctx) {
		var student models.Student
		if err := cursor.Decode(&student); err != nil {
			continue
		}
		if student.Email != "" {
			emails = append(emails, student.Email)
		}
	}
	return emails, cursor.Err()
}
