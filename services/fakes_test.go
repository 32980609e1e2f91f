package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBatch struct {
	id     string
	number string
	name   string
}

type fakeBatchStore struct {
	regular   []fakeBatch
	placement []fakeBatch
}

func (s *fakeBatchStore) batches(kind models.BatchKind) []fakeBatch {
	if kind == models.BatchKindPlacement {
		return s.placement
	}
	return s.regular
}

func (s *fakeBatchStore) FindExact(_ context.Context, kind models.BatchKind, value string) (*models.BatchRef, error) {
	for _, b := range s.batches(kind) {
		if b.number == value || b.name == value {
			return &models.BatchRef{ID: b.id, BatchNumber: b.number, Name: b.name}, nil
		}
	}
	return nil, nil
}

func (s *fakeBatchStore) FindCaseInsensitive(_ context.Context, kind models.BatchKind, value string) (*models.BatchRef, error) {
	for _, b := range s.batches(kind) {
		if strings.EqualFold(b.number, value) || strings.EqualFold(b.name, value) {
			return &models.BatchRef{ID: b.id, BatchNumber: b.number, Name: b.name}, nil
		}
	}
	return nil, nil
}

func (s *fakeBatchStore) FindSubstring(_ context.Context, kind models.BatchKind, value string) (*models.BatchRef, error) {
	needle := strings.ToLower(value)
	for _, b := range s.batches(kind) {
		if strings.Contains(strings.ToLower(b.number), needle) || strings.Contains(strings.ToLower(b.name), needle) {
			return &models.BatchRef{ID: b.id, BatchNumber: b.number, Name: b.name}, nil
		}
	}
	return nil, nil
}

func (s *fakeBatchStore) Exists(_ context.Context, kind models.BatchKind, id string) (bool, error) {
	for _, b := range s.batches(kind) {
		if b.id == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeStudentStore struct {
	access map[string]*models.StudentAccess
}

func (s *fakeStudentStore) FindAccess(_ context.Context, studentID string) (*models.StudentAccess, error) {
	return s.access[studentID], nil
}

type fakeTrainerStore struct {
	subjects map[string]string
}

func (s *fakeTrainerStore) FindSubject(_ context.Context, trainerID string) (string, error) {
	return s.subjects[trainerID], nil
}

// fakeQuizStore mirrors the mongo store's conditional-write semantics under
// a mutex, so the concurrency tests exercise the same guarantees.
type fakeQuizStore struct {
	mu      sync.Mutex
	quizzes map[string]*models.Quiz
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: make(map[string]*models.Quiz)}
}

func copyQuiz(q *models.Quiz) *models.Quiz {
	dup := *q
	dup.Submissions = append([]models.Submission(nil), q.Submissions...)
	dup.Questions = append([]models.Question(nil), q.Questions...)
	dup.AssignedBatches = append([]string(nil), q.AssignedBatches...)
	dup.AssignedPlacementBatches = append([]string(nil), q.AssignedPlacementBatches...)
	return &dup
}

func (s *fakeQuizStore) Insert(_ context.Context, quiz *models.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quiz.ID.IsZero() {
		quiz.ID = primitive.NewObjectID()
	}
	s.quizzes[quiz.ID.Hex()] = copyQuiz(quiz)
	return nil
}

func (s *fakeQuizStore) FindByID(_ context.Context, id string) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, nil
	}
	return copyQuiz(quiz), nil
}

func (s *fakeQuizStore) FindByTrainer(_ context.Context, trainerID string) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Quiz
	for _, quiz := range s.quizzes {
		if quiz.TrainerID == trainerID {
			out = append(out, *copyQuiz(quiz))
		}
	}
	return out, nil
}

func (s *fakeQuizStore) FindAssignedToBatches(_ context.Context, batchID, placementBatchID string) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Quiz
	for _, quiz := range s.quizzes {
		if (batchID != "" && contains(quiz.AssignedBatches, batchID)) ||
			(placementBatchID != "" && contains(quiz.AssignedPlacementBatches, placementBatchID)) {
			out = append(out, *copyQuiz(quiz))
		}
	}
	return out, nil
}

func (s *fakeQuizStore) Update(_ context.Context, quiz *models.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID.Hex()] = copyQuiz(quiz)
	return nil
}

func (s *fakeQuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quizzes, id)
	return nil
}

func (s *fakeQuizStore) FindMissingSchedule(_ context.Context, trainerID string) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Quiz
	for _, quiz := range s.quizzes {
		if quiz.TrainerID == trainerID && (quiz.ScheduledStart == nil || quiz.ScheduledEnd == nil) {
			out = append(out, *copyQuiz(quiz))
		}
	}
	return out, nil
}

func (s *fakeQuizStore) SetSchedule(_ context.Context, id string, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quiz, ok := s.quizzes[id]; ok {
		quiz.ScheduledStart = &start
		quiz.ScheduledEnd = &end
	}
	return nil
}

func (s *fakeQuizStore) AddSubmission(_ context.Context, quizID string, sub models.Submission) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return false, nil
	}
	if quiz.SubmissionFor(sub.StudentID) != nil {
		return false, nil
	}
	quiz.Submissions = append(quiz.Submissions, sub)
	return true, nil
}

func (s *fakeQuizStore) ReplaceSubmission(_ context.Context, quizID string, prevAttempt int, sub models.Submission) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return false, nil
	}
	for i := range quiz.Submissions {
		if quiz.Submissions[i].StudentID == sub.StudentID && quiz.Submissions[i].AttemptNumber == prevAttempt {
			quiz.Submissions[i] = sub
			return true, nil
		}
	}
	return false, nil
}

type notifyCall struct {
	BatchID string
	Payload NotificationPayload
}

type recordingNotifier struct {
	mu         sync.Mutex
	calls      []notifyCall
	broadcasts [][]string
}

func (n *recordingNotifier) NotifyBatch(_ context.Context, batchID string, payload NotificationPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{BatchID: batchID, Payload: payload})
	return nil
}

func (n *recordingNotifier) NotifyAll(_ context.Context, batchIDs []string, payload NotificationPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, append([]string(nil), batchIDs...))
	return nil
}
