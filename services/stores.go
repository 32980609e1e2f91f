package services

import (
	"context"
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
)

// BatchStore is the lookup surface the resolver and reconciliation need.
// All Find methods return (nil, nil) when nothing matches.
type BatchStore interface {
	// FindExact matches the batch number or name verbatim.
	FindExact(ctx context.Context, kind models.BatchKind, value string) (*models.BatchRef, error)
	// FindCaseInsensitive matches the batch number or name ignoring case.
	FindCaseInsensitive(ctx context.Context, kind models.BatchKind, value string) (*models.BatchRef, error)
	// FindSubstring matches value as a case-insensitive substring of the
	// batch number or name.
	FindSubstring(ctx context.Context, kind models.BatchKind, value string) (*models.BatchRef, error)
	Exists(ctx context.Context, kind models.BatchKind, id string) (bool, error)
}

type StudentStore interface {
	// FindAccess returns the student's batch memberships, (nil, nil) when
	// the student is unknown.
	FindAccess(ctx context.Context, studentID string) (*models.StudentAccess, error)
}

type TrainerStore interface {
	// FindSubject returns "" when the trainer is unknown.
	FindSubject(ctx context.Context, trainerID string) (string, error)
}

type QuizStore interface {
	// Insert persists the quiz and fills in its generated id.
	Insert(ctx context.Context, quiz *models.Quiz) error
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindByTrainer(ctx context.Context, trainerID string) ([]models.Quiz, error)
	// FindAssignedToBatches returns quizzes whose regular or placement
	// assignment lists contain either id. Empty ids never match.
	FindAssignedToBatches(ctx context.Context, batchID, placementBatchID string) ([]models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error

	// FindMissingSchedule returns the trainer's quizzes lacking either
	// scheduled instant.
	FindMissingSchedule(ctx context.Context, trainerID string) ([]models.Quiz, error)
	SetSchedule(ctx context.Context, id string, start, end time.Time) error

	// AddSubmission pushes sub iff the student has no submission on the
	// quiz yet. Returns false when the guard failed.
	AddSubmission(ctx context.Context, quizID string, sub models.Submission) (bool, error)
	// ReplaceSubmission overwrites the student's submission iff its
	// current attempt number equals prevAttempt. Returns false when the
	// guard failed.
	ReplaceSubmission(ctx context.Context, quizID string, prevAttempt int, sub models.Submission) (bool, error)
}
