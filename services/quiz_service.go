package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
)

// submitRetries bounds the conditional-write loop on the submit path.
const submitRetries = 3

// QuizService orchestrates batch resolution, scheduling, access gating and
// grading for every quiz operation.
type QuizService struct {
	Quizzes  QuizStore
	Students StudentStore
	Trainers TrainerStore
	Resolver *BatchResolver
	Gate     AccessGate
	Notifier Notifier

	now func() time.Time
}

func NewQuizService(quizzes QuizStore, students StudentStore, trainers TrainerStore, resolver *BatchResolver, gate AccessGate, notifier Notifier) *QuizService {
	return &QuizService{
		Quizzes:  quizzes,
		Students: students,
		Trainers: trainers,
		Resolver: resolver,
		Gate:     gate,
		Notifier: notifier,
		now:      time.Now,
	}
}

// QuizDraft is the create payload after transport-level validation.
type QuizDraft struct {
	Subject     string
	Title       string
	Description string
	Questions   []models.Question

	PassingMarks    int
	DurationMinutes int

	Schedule ScheduleInput

	BatchType        string
	Batches          []string
	PlacementBatches []string

	ShuffleQuestions       bool
	ShowResultsImmediately bool
	AllowRetake            bool
}

// CreateQuiz validates the trainer's subject, resolves batch targets,
// normalizes the window, persists the quiz and fans out notifications.
func (s *QuizService) CreateQuiz(ctx context.Context, caller CallerContext, draft QuizDraft) (*models.Quiz, error) {
	if err := s.checkSubject(ctx, caller, draft.Subject); err != nil {
		return nil, err
	}
	if len(draft.Questions) == 0 {
		return nil, validationErrorf("quiz needs at least one question")
	}
	if err := validateQuestions(draft.Questions); err != nil {
		return nil, err
	}

	resolved, err := s.Resolver.ResolveAll(ctx, draft.Batches, draft.PlacementBatches, draft.BatchType)
	if err != nil {
		return nil, err
	}

	window, err := NormalizeSchedule(draft.Schedule)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	quiz := &models.Quiz{
		TrainerID:   caller.ID,
		Subject:     draft.Subject,
		Title:       draft.Title,
		Description: draft.Description,

		Questions:    draft.Questions,
		TotalMarks:   totalMarks(draft.Questions),
		PassingMarks: draft.PassingMarks,

		QuizDate:        window.Start.Truncate(24 * time.Hour),
		StartTime:       draft.Schedule.StartTime,
		EndTime:         draft.Schedule.EndTime,
		DurationMinutes: draft.DurationMinutes,
		ScheduledStart:  &window.Start,
		ScheduledEnd:    &window.End,

		BatchType:                resolved.FinalBatchType,
		AssignedBatches:          resolved.Regular,
		AssignedPlacementBatches: resolved.Placement,

		ShuffleQuestions:       draft.ShuffleQuestions,
		ShowResultsImmediately: draft.ShowResultsImmediately,
		AllowRetake:            draft.AllowRetake,
		Status:                 models.QuizStatusActive,

		Submissions: []models.Submission{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Quizzes.Insert(ctx, quiz); err != nil {
		return nil, err
	}

	s.fanOut(ctx, quiz, "New Quiz Assigned",
		fmt.Sprintf("Quiz %q (%s) has been scheduled for your batch.", quiz.Title, quiz.Subject))
	return quiz, nil
}

// ListForTrainer omits question bodies and submissions.
func (s *QuizService) ListForTrainer(ctx context.Context, caller CallerContext) ([]models.Quiz, error) {
	quizzes, err := s.Quizzes.FindByTrainer(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		quizzes[i].Questions = nil
		quizzes[i].Submissions = nil
	}
	return quizzes, nil
}

func (s *QuizService) GetForTrainer(ctx context.Context, caller CallerContext, quizID string) (*models.Quiz, error) {
	return s.ownedQuiz(ctx, caller, quizID)
}

// ListSubmissions is the trainer's results view for one quiz.
func (s *QuizService) ListSubmissions(ctx context.Context, caller CallerContext, quizID string) ([]models.Submission, error) {
	quiz, err := s.ownedQuiz(ctx, caller, quizID)
	if err != nil {
		return nil, err
	}
	return quiz.Submissions, nil
}

// QuizPatch carries the updatable fields. Nil slices / empty strings mean
// "leave unchanged". Submissions are never patchable.
type QuizPatch struct {
	Subject     string
	Title       string
	Description *string
	Questions   []models.Question

	PassingMarks    *int
	DurationMinutes *int

	Schedule *ScheduleInput

	BatchType        string
	Batches          []string
	PlacementBatches []string

	ShuffleQuestions       *bool
	ShowResultsImmediately *bool
	AllowRetake            *bool
	Status                 string
}

// UpdateQuiz re-validates the subject, re-resolves batch targets when new
// candidate lists arrive and recomputes the window when scheduling fields
// change. Returns the updated quiz value; persistence is the final step.
func (s *QuizService) UpdateQuiz(ctx context.Context, caller CallerContext, quizID string, patch QuizPatch) (*models.Quiz, error) {
	quiz, err := s.ownedQuiz(ctx, caller, quizID)
	if err != nil {
		return nil, err
	}

	if patch.Subject != "" {
		if err := s.checkSubject(ctx, caller, patch.Subject); err != nil {
			return nil, err
		}
		quiz.Subject = patch.Subject
	}
	if patch.Title != "" {
		quiz.Title = patch.Title
	}
	if patch.Description != nil {
		quiz.Description = *patch.Description
	}
	if patch.Questions != nil {
		if err := validateQuestions(patch.Questions); err != nil {
			return nil, err
		}
		quiz.Questions = patch.Questions
		// TotalMarks is frozen once submissions exist so stored
		// percentages keep their meaning.
		if len(quiz.Submissions) == 0 {
			quiz.TotalMarks = totalMarks(patch.Questions)
		}
	}
	if patch.PassingMarks != nil {
		quiz.PassingMarks = *patch.PassingMarks
	}
	if patch.DurationMinutes != nil {
		quiz.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Batches != nil || patch.PlacementBatches != nil {
		requested := patch.BatchType
		if requested == "" {
			requested = quiz.BatchType
		}
		resolved, err := s.Resolver.ResolveAll(ctx, patch.Batches, patch.PlacementBatches, requested)
		if err != nil {
			return nil, err
		}
		quiz.AssignedBatches = resolved.Regular
		quiz.AssignedPlacementBatches = resolved.Placement
		quiz.BatchType = resolved.FinalBatchType
	} else if patch.BatchType != "" {
		quiz.BatchType = normalizeBatchType(patch.BatchType)
	}
	if patch.Schedule != nil {
		// A partial patch (only a new date, or only new times) is
		// completed from the quiz's current scheduling fields.
		sched := *patch.Schedule
		if sched.StartInstant == "" || sched.EndInstant == "" {
			if sched.Date == "" {
				sched.Date = quiz.QuizDate.UTC().Format("2006-01-02")
			}
			if sched.StartTime == "" {
				sched.StartTime = quiz.StartTime
			}
			if sched.EndTime == "" {
				sched.EndTime = quiz.EndTime
			}
		}
		window, err := NormalizeSchedule(sched)
		if err != nil {
			return nil, err
		}
		quiz.ScheduledStart = &window.Start
		quiz.ScheduledEnd = &window.End
		quiz.QuizDate = window.Start.Truncate(24 * time.Hour)
		if sched.StartTime != "" {
			quiz.StartTime = sched.StartTime
		}
		if sched.EndTime != "" {
			quiz.EndTime = sched.EndTime
		}
	}
	if patch.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *patch.ShuffleQuestions
	}
	if patch.ShowResultsImmediately != nil {
		quiz.ShowResultsImmediately = *patch.ShowResultsImmediately
	}
	if patch.AllowRetake != nil {
		quiz.AllowRetake = *patch.AllowRetake
	}
	if patch.Status != "" {
		if patch.Status != models.QuizStatusActive && patch.Status != models.QuizStatusInactive {
			return nil, validationErrorf("invalid status %q", patch.Status)
		}
		quiz.Status = patch.Status
	}
	quiz.UpdatedAt = s.now().UTC()

	if err := s.Quizzes.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// DeleteQuiz notifies every assigned batch, then removes the record.
func (s *QuizService) DeleteQuiz(ctx context.Context, caller CallerContext, quizID string) error {
	quiz, err := s.ownedQuiz(ctx, caller, quizID)
	if err != nil {
		return err
	}
	s.fanOut(ctx, quiz, "Quiz Removed",
		fmt.Sprintf("Quiz %q (%s) has been withdrawn.", quiz.Title, quiz.Subject))
	return s.Quizzes.Delete(ctx, quiz.ID.Hex())
}

// BackfillSchedules populates scheduledStart/scheduledEnd on the trainer's
// quizzes that predate those fields. Idempotent: quizzes with both set are
// never selected.
func (s *QuizService) BackfillSchedules(ctx context.Context, caller CallerContext) (int, error) {
	quizzes, err := s.Quizzes.FindMissingSchedule(ctx, caller.ID)
	if err != nil {
		return 0, err
	}
	updated := 0
	for i := range quizzes {
		quiz := &quizzes[i]
		window, err := ComposeWindow(quiz.QuizDate.UTC().Truncate(24*time.Hour), quiz.StartTime, quiz.EndTime)
		if err != nil {
			log.Printf("backfill: skipping quiz %s: %v", quiz.ID.Hex(), err)
			continue
		}
		if err := s.Quizzes.SetSchedule(ctx, quiz.ID.Hex(), window.Start, window.End); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// StudentQuizSummary is a list row for the student dashboard.
type StudentQuizSummary struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	ScheduledStart  *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd    *time.Time `json:"scheduled_end,omitempty"`
	AllowRetake     bool       `json:"allow_retake"`
	QuestionCount   int        `json:"question_count"`
	TotalMarks      int        `json:"total_marks"`

	Submitted     bool     `json:"submitted"`
	Score         *int     `json:"score,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
	AttemptNumber *int     `json:"attempt_number,omitempty"`
}

// ListForStudent returns the quizzes the student's batches are targeted by,
// with the student's own submission status attached.
func (s *QuizService) ListForStudent(ctx context.Context, caller CallerContext) ([]StudentQuizSummary, error) {
	access, err := s.Students.FindAccess(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if access == nil {
		return []StudentQuizSummary{}, nil
	}
	quizzes, err := s.Quizzes.FindAssignedToBatches(ctx, access.BatchID, access.PlacementTrainingBatchID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	summaries := make([]StudentQuizSummary, 0, len(quizzes))
	for i := range quizzes {
		quiz := &quizzes[i]
		if reason := s.Gate.Evaluate(quiz, access, now); reason != "" && reason != DenyWindowNotOpen {
			continue
		}
		summary := StudentQuizSummary{
			ID:              quiz.ID.Hex(),
			Title:           quiz.Title,
			Subject:         quiz.Subject,
			Description:     quiz.Description,
			DurationMinutes: quiz.DurationMinutes,
			ScheduledStart:  quiz.ScheduledStart,
			ScheduledEnd:    quiz.ScheduledEnd,
			AllowRetake:     quiz.AllowRetake,
			QuestionCount:   len(quiz.Questions),
			TotalMarks:      quiz.TotalMarks,
		}
		if sub := quiz.SubmissionFor(caller.ID); sub != nil {
			summary.Submitted = true
			summary.Score = &sub.Score
			summary.Percentage = &sub.Percentage
			summary.AttemptNumber = &sub.AttemptNumber
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// StudentQuestion is a question with every correctness marker stripped.
type StudentQuestion struct {
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options,omitempty"`
	Marks        int      `json:"marks"`
	Difficulty   string   `json:"difficulty,omitempty"`
}

type StudentQuizView struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Subject         string            `json:"subject"`
	Description     string            `json:"description,omitempty"`
	DurationMinutes int               `json:"duration_minutes"`
	ScheduledStart  *time.Time        `json:"scheduled_start,omitempty"`
	ScheduledEnd    *time.Time        `json:"scheduled_end,omitempty"`
	TotalMarks      int               `json:"total_marks"`
	PassingMarks    int               `json:"passing_marks"`
	AllowRetake     bool              `json:"allow_retake"`
	Questions       []StudentQuestion `json:"questions"`
}

// GetForStudent runs the access gate and returns the quiz with correct
// answers and flags stripped from every question. Questions are shuffled
// when the quiz asks for it.
func (s *QuizService) GetForStudent(ctx context.Context, caller CallerContext, quizID string) (*StudentQuizView, error) {
	quiz, _, err := s.admit(ctx, caller, quizID)
	if err != nil {
		return nil, err
	}

	questions := make([]StudentQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		sq := StudentQuestion{
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Marks:        q.Marks,
			Difficulty:   q.Difficulty,
		}
		for _, opt := range q.Options {
			sq.Options = append(sq.Options, opt.Text)
		}
		questions[i] = sq
	}
	if quiz.ShuffleQuestions {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	return &StudentQuizView{
		ID:              quiz.ID.Hex(),
		Title:           quiz.Title,
		Subject:         quiz.Subject,
		Description:     quiz.Description,
		DurationMinutes: quiz.DurationMinutes,
		ScheduledStart:  quiz.ScheduledStart,
		ScheduledEnd:    quiz.ScheduledEnd,
		TotalMarks:      quiz.TotalMarks,
		PassingMarks:    quiz.PassingMarks,
		AllowRetake:     quiz.AllowRetake,
		Questions:       questions,
	}, nil
}

// Submit grades the answers and persists the submission with a conditional
// write keyed on the prior attempt number, retried on conflict. Two racing
// submits for the same student can never merge: one wins, the loser either
// retries against the winner's attempt number or fails with
// ErrSubmitConflict.
func (s *QuizService) Submit(ctx context.Context, caller CallerContext, quizID string, answers []string, timeSpent int) (*GradeResult, error) {
	quiz, _, err := s.admit(ctx, caller, quizID)
	if err != nil {
		return nil, err
	}
	if len(answers) != len(quiz.Questions) {
		return nil, validationErrorf("expected %d answers, got %d", len(quiz.Questions), len(answers))
	}

	for attempt := 0; attempt < submitRetries; attempt++ {
		prior := quiz.SubmissionFor(caller.ID)
		if prior != nil && !quiz.AllowRetake {
			return nil, ErrAlreadySubmitted
		}

		attemptNumber := 1
		if prior != nil {
			attemptNumber = prior.AttemptNumber + 1
		}
		sub, result := GradeSubmission(quiz, caller.ID, answers, timeSpent, attemptNumber, s.now().UTC())

		var ok bool
		if prior == nil {
			ok, err = s.Quizzes.AddSubmission(ctx, quizID, sub)
		} else {
			ok, err = s.Quizzes.ReplaceSubmission(ctx, quizID, prior.AttemptNumber, sub)
		}
		if err != nil {
			return nil, err
		}
		if ok {
			if !quiz.ShowResultsImmediately {
				return &GradeResult{AttemptNumber: result.AttemptNumber, TotalMarks: result.TotalMarks}, nil
			}
			return &result, nil
		}

		// Lost the write: reload and retry against the current state.
		quiz, err = s.Quizzes.FindByID(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if quiz == nil {
			return nil, ErrNotFound
		}
	}
	return nil, ErrSubmitConflict
}

func (s *QuizService) admit(ctx context.Context, caller CallerContext, quizID string) (*models.Quiz, *models.StudentAccess, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}
	if quiz == nil {
		return nil, nil, ErrNotFound
	}
	access, err := s.Students.FindAccess(ctx, caller.ID)
	if err != nil {
		return nil, nil, err
	}
	if reason := s.Gate.Evaluate(quiz, access, s.now().UTC()); reason != "" {
		log.Printf("access denied: student=%s quiz=%s reason=%s", caller.ID, quizID, reason)
		return nil, nil, &AccessDeniedError{Reason: reason}
	}
	return quiz, access, nil
}

func (s *QuizService) ownedQuiz(ctx context.Context, caller CallerContext, quizID string) (*models.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	// Missing and not-owned collapse into the same answer.
	if quiz == nil || quiz.TrainerID != caller.ID {
		return nil, ErrNotFound
	}
	return quiz, nil
}

func (s *QuizService) checkSubject(ctx context.Context, caller CallerContext, subject string) error {
	trainerSubject, err := s.Trainers.FindSubject(ctx, caller.ID)
	if err != nil {
		return err
	}
	if trainerSubject == "" || !strings.EqualFold(trainerSubject, subject) {
		return validationErrorf("you can only create quizzes for your assigned subject")
	}
	return nil
}

// fanOut notifies every assigned batch individually plus one combined
// broadcast. Best effort: failures are logged and never propagated.
func (s *QuizService) fanOut(ctx context.Context, quiz *models.Quiz, title, message string) {
	if s.Notifier == nil {
		return
	}
	payload := NotificationPayload{
		Title:    title,
		Message:  message,
		Category: "quiz",
		Type:     quiz.Subject,
		Actor:    quiz.TrainerID,
	}
	targets := append(append([]string{}, quiz.AssignedBatches...), quiz.AssignedPlacementBatches...)
	for _, batchID := range targets {
		if err := s.Notifier.NotifyBatch(ctx, batchID, payload); err != nil {
			log.Printf("notify batch %s: %v", batchID, err)
		}
	}
	if len(targets) > 0 {
		if err := s.Notifier.NotifyAll(ctx, targets, payload); err != nil {
			log.Printf("notify broadcast: %v", err)
		}
	}
}

func totalMarks(questions []models.Question) int {
	total := 0
	for _, q := range questions {
		total += q.Marks
	}
	return total
}

func validateQuestions(questions []models.Question) error {
	for i, q := range questions {
		switch q.QuestionType {
		case models.QuestionMultipleChoice:
			correct := 0
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correct++
				}
			}
			if len(q.Options) < 2 || correct != 1 {
				return validationErrorf("question %d needs at least two options with exactly one marked correct", i+1)
			}
		case models.QuestionTrueFalse, models.QuestionFillBlank:
			if strings.TrimSpace(q.CorrectAnswer) == "" {
				return validationErrorf("question %d needs a correct answer", i+1)
			}
		default:
			return validationErrorf("question %d has unknown type %q", i+1, q.QuestionType)
		}
		if q.Marks <= 0 {
			return validationErrorf("question %d needs positive marks", i+1)
		}
	}
	return nil
}
