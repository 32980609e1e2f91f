package database

import (
	"context"
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizStore struct {
	quizzes *mongo.Collection
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: DB.Collection("quizzes")}
}

func (s *QuizStore) Insert(ctx context.Context, quiz *models.Quiz) error {
	res, err := s.quizzes.InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid
	}
	return nil
}

func (s *QuizStore) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var quiz models.Quiz
	err = s.quizzes.FindOne(ctx, bson.M{"_id": oid}).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizStore) FindByTrainer(ctx context.Context, trainerID string) ([]models.Quiz, error) {
	return s.find(ctx, bson.M{"trainerId": trainerID})
}

func (s *QuizStore) FindAssignedToBatches(ctx context.Context, batchID, placementBatchID string) ([]models.Quiz, error) {
	var clauses bson.A
	if batchID != "" {
		clauses = append(clauses, bson.M{"assignedBatches": batchID})
	}
	if placementBatchID != "" {
		clauses = append(clauses, bson.M{"assignedPlacementBatches": placementBatchID})
	}
	if len(clauses) == 0 {
		return []models.Quiz{}, nil
	}
	return s.find(ctx, bson.M{"$or": clauses})
}

func (s *QuizStore) Update(ctx context.Context, quiz *models.Quiz) error {
	_, err := s.quizzes.ReplaceOne(ctx, bson.M{"_id": quiz.ID}, quiz)
	return err
}

func (s *QuizStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = s.quizzes.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (s *QuizStore) FindMissingSchedule(ctx context.Context, trainerID string) ([]models.Quiz, error) {
	return s.find(ctx, bson.M{
		"trainerId": trainerID,
		"$or": bson.A{
			bson.M{"scheduledStart": bson.M{"$exists": false}},
			bson.M{"scheduledEnd": bson.M{"$exists": false}},
			bson.M{"scheduledStart": nil},
			bson.M{"scheduledEnd": nil},
		},
	})
}

func (s *QuizStore) SetSchedule(ctx context.Context, id string, start, end time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = s.quizzes.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"scheduledStart": start,
		"scheduledEnd":   end,
		"updatedAt":      time.Now().UTC(),
	}})
	return err
}

// AddSubmission pushes iff the student has no entry yet; the guard in the
// filter makes two racing first attempts resolve to a single stored entry.
func (s *QuizStore) AddSubmission(ctx context.Context, quizID string, sub models.Submission) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return false, nil
	}
	res, err := s.quizzes.UpdateOne(ctx,
		bson.M{"_id": oid, "submissions.studentId": bson.M{"$ne": sub.StudentID}},
		bson.M{"$push": bson.M{"submissions": sub}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// ReplaceSubmission overwrites in place iff the stored attempt number still
// matches what the caller graded against.
func (s *QuizStore) ReplaceSubmission(ctx context.Context, quizID string, prevAttempt int, sub models.Submission) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return false, nil
	}
	res, err := s.quizzes.UpdateOne(ctx,
		bson.M{"_id": oid, "submissions": bson.M{"$elemMatch": bson.M{
			"studentId":     sub.StudentID,
			"attemptNumber": prevAttempt,
		}}},
		bson.M{"$set": bson.M{"submissions.$": sub}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// CloseExpired flips active quizzes whose window has passed to inactive.
func (s *QuizStore) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.quizzes.UpdateMany(ctx,
		bson.M{"status": models.QuizStatusActive, "scheduledEnd": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"status": models.QuizStatusInactive, "updatedAt": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *QuizStore) find(ctx context.Context, filter bson.M) ([]models.Quiz, error) {
	cursor, err := s.quizzes.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	quizzes := []models.Quiz{}
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}
