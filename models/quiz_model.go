package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionTrueFalse      = "true-false"
	QuestionFillBlank      = "fill-blank"
)

const (
	BatchTypeNonCRT    = "noncrt"
	BatchTypePlacement = "placement"
	BatchTypeBoth      = "both"
	// Legacy alias still present in old quiz documents.
	BatchTypeRegular = "regular"
)

const (
	QuizStatusActive   = "active"
	QuizStatusInactive = "inactive"
)

const (
	PerformanceGreen  = "green"
	PerformanceYellow = "yellow"
	PerformanceRed    = "red"
)

type QuestionOption struct {
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"isCorrect" json:"is_correct,omitempty"`
}

type Question struct {
	QuestionText  string           `bson:"questionText" json:"question_text"`
	QuestionType  string           `bson:"questionType" json:"question_type"`
	Options       []QuestionOption `bson:"options,omitempty" json:"options,omitempty"`
	CorrectAnswer string           `bson:"correctAnswer,omitempty" json:"correct_answer,omitempty"`
	Marks         int              `bson:"marks" json:"marks"`
	Difficulty    string           `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
}

type SubmissionAnswer struct {
	QuestionIndex int    `bson:"questionIndex" json:"question_index"`
	Answer        string `bson:"answer" json:"answer"`
	IsCorrect     bool   `bson:"isCorrect" json:"is_correct"`
	MarksAwarded  int    `bson:"marksAwarded" json:"marks_awarded"`
}

// Submission is embedded in the quiz document, one live entry per student.
// Retakes replace the entry in place; AttemptNumber records how many passes
// the student has made.
type Submission struct {
	ID                  string             `bson:"id" json:"id"`
	StudentID           string             `bson:"studentId" json:"student_id"`
	Answers             []SubmissionAnswer `bson:"answers" json:"answers"`
	Score               int                `bson:"score" json:"score"`
	Percentage          float64            `bson:"percentage" json:"percentage"`
	TimeSpentSeconds    int                `bson:"timeSpentSeconds" json:"time_spent_seconds"`
	PerformanceCategory string             `bson:"performanceCategory" json:"performance_category"`
	AttemptNumber       int                `bson:"attemptNumber" json:"attempt_number"`
	SubmittedAt         time.Time          `bson:"submittedAt" json:"submitted_at"`
}

type Quiz struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   string             `bson:"trainerId" json:"trainer_id"`
	Subject     string             `bson:"subject" json:"subject"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Questions    []Question `bson:"questions" json:"questions,omitempty"`
	TotalMarks   int        `bson:"totalMarks" json:"total_marks"`
	PassingMarks int        `bson:"passingMarks" json:"passing_marks"`

	QuizDate        time.Time  `bson:"quizDate" json:"quiz_date"`
	StartTime       string     `bson:"startTime" json:"start_time"`
	EndTime         string     `bson:"endTime" json:"end_time"`
	DurationMinutes int        `bson:"durationMinutes" json:"duration_minutes"`
	ScheduledStart  *time.Time `bson:"scheduledStart,omitempty" json:"scheduled_start,omitempty"`
	ScheduledEnd    *time.Time `bson:"scheduledEnd,omitempty" json:"scheduled_end,omitempty"`

	BatchType                string   `bson:"batchType" json:"batch_type"`
	AssignedBatches          []string `bson:"assignedBatches" json:"assigned_batches"`
	AssignedPlacementBatches []string `bson:"assignedPlacementBatches" json:"assigned_placement_batches"`

	ShuffleQuestions       bool   `bson:"shuffleQuestions" json:"shuffle_questions"`
	ShowResultsImmediately bool   `bson:"showResultsImmediately" json:"show_results_immediately"`
	AllowRetake            bool   `bson:"allowRetake" json:"allow_retake"`
	Status                 string `bson:"status" json:"status"`

	Submissions []Submission `bson:"submissions" json:"submissions,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// SubmissionFor returns the student's live submission, or nil.
func (q *Quiz) SubmissionFor(studentID string) *Submission {
	for i := range q.Submissions {
		if q.Submissions[i].StudentID == studentID {
			return &q.Submissions[i]
		}
	}
	return nil
}
