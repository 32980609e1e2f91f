package services

import (
	"strings"
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
	"github.com/google/uuid"
)

// GradeResult is what a student gets back after submitting.
type GradeResult struct {
	Score               int     `json:"score"`
	TotalMarks          int     `json:"total_marks"`
	Percentage          float64 `json:"percentage"`
	PerformanceCategory string  `json:"performance_category"`
	PassingMarks        int     `json:"passing_marks"`
	Passed              bool    `json:"passed"`
	AttemptNumber       int     `json:"attempt_number"`
}

// GradeSubmission scores answers against the quiz's question list and
// builds the submission value to persist. Pure: it never touches the quiz.
// answers must have the same cardinality and index order as the questions.
// TotalMarks comes from the quiz document, not from re-summing questions,
// so scoring stays stable once submissions exist.
func GradeSubmission(quiz *models.Quiz, studentID string, answers []string, timeSpent, attemptNumber int, submittedAt time.Time) (models.Submission, GradeResult) {
	score := 0
	evaluated := make([]models.SubmissionAnswer, len(answers))
	for i, answer := range answers {
		question := quiz.Questions[i]
		correct := answerCorrect(question, answer)
		awarded := 0
		if correct {
			score += question.Marks
			awarded = question.Marks
		}
		evaluated[i] = models.SubmissionAnswer{
			QuestionIndex: i,
			Answer:        answer,
			IsCorrect:     correct,
			MarksAwarded:  awarded,
		}
	}

	percentage := 0.0
	if quiz.TotalMarks > 0 {
		percentage = 100 * float64(score) / float64(quiz.TotalMarks)
	}

	sub := models.Submission{
		ID:                  uuid.NewString(),
		StudentID:           studentID,
		Answers:             evaluated,
		Score:               score,
		Percentage:          percentage,
		TimeSpentSeconds:    timeSpent,
		PerformanceCategory: PerformanceCategory(percentage),
		AttemptNumber:       attemptNumber,
		SubmittedAt:         submittedAt,
	}
	result := GradeResult{
		Score:               score,
		TotalMarks:          quiz.TotalMarks,
		Percentage:          percentage,
		PerformanceCategory: sub.PerformanceCategory,
		PassingMarks:        quiz.PassingMarks,
		Passed:              score >= quiz.PassingMarks,
		AttemptNumber:       attemptNumber,
	}
	return sub, result
}

func answerCorrect(q models.Question, answer string) bool {
	switch q.QuestionType {
	case models.QuestionMultipleChoice:
		for _, opt := range q.Options {
			if opt.IsCorrect {
				return answer == opt.Text
			}
		}
		return false
	case models.QuestionTrueFalse:
		return strings.EqualFold(answer, q.CorrectAnswer)
	case models.QuestionFillBlank:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
	default:
		return false
	}
}

// PerformanceCategory buckets a percentage for dashboards.
func PerformanceCategory(percentage float64) string {
	switch {
	case percentage >= 80:
		return models.PerformanceGreen
	case percentage >= 60:
		return models.PerformanceYellow
	default:
		return models.PerformanceRed
	}
}
