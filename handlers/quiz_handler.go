package handlers

import (
	"github.com/KadariPavani/placement-training-backend/models"
	"github.com/KadariPavani/placement-training-backend/services"
	"github.com/gofiber/fiber/v2"
)

type QuestionOptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionRequest struct {
	QuestionText  string                  `json:"question_text" validate:"required"`
	QuestionType  string                  `json:"question_type" validate:"required,oneof=multiple-choice true-false fill-blank"`
	Options       []QuestionOptionRequest `json:"options"`
	CorrectAnswer string                  `json:"correct_answer"`
	Marks         int                     `json:"marks" validate:"required,gt=0"`
	Difficulty    string                  `json:"difficulty"`
}

type CreateQuizRequest struct {
	Subject     string            `json:"subject" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions" validate:"required,min=1,dive"`

	PassingMarks    int `json:"passing_marks" validate:"gte=0"`
	DurationMinutes int `json:"duration_minutes" validate:"gt=0"`

	QuizDate     string `json:"quiz_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	StartInstant string `json:"start_instant"`
	EndInstant   string `json:"end_instant"`

	BatchType        string   `json:"batch_type"`
	Batches          []string `json:"batches"`
	PlacementBatches []string `json:"placement_batches"`

	ShuffleQuestions       bool `json:"shuffle_questions"`
	ShowResultsImmediately bool `json:"show_results_immediately"`
	AllowRetake            bool `json:"allow_retake"`
}

func toQuestions(reqs []QuestionRequest) []models.Question {
	questions := make([]models.Question, len(reqs))
	for i, q := range reqs {
		question := models.Question{
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
			Difficulty:    q.Difficulty,
		}
		for _, opt := range q.Options {
			question.Options = append(question.Options, models.QuestionOption{
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		questions[i] = question
	}
	return questions
}

func CreateQuiz(c *fiber.Ctx) error {
	var req CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	draft := services.QuizDraft{
		Subject:         req.Subject,
		Title:           req.Title,
		Description:     req.Description,
		Questions:       toQuestions(req.Questions),
		PassingMarks:    req.PassingMarks,
		DurationMinutes: req.DurationMinutes,
		Schedule: services.ScheduleInput{
			StartInstant: req.StartInstant,
			EndInstant:   req.EndInstant,
			Date:         req.QuizDate,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
		},
		BatchType:              req.BatchType,
		Batches:                req.Batches,
		PlacementBatches:       req.PlacementBatches,
		ShuffleQuestions:       req.ShuffleQuestions,
		ShowResultsImmediately: req.ShowResultsImmediately,
		AllowRetake:            req.AllowRetake,
	}

	quiz, err := quizService.CreateQuiz(c.Context(), caller(c), draft)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := quizService.ListForTrainer(c.Context(), caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(quizzes)
}

func GetQuiz(c *fiber.Ctx) error {
	quiz, err := quizService.GetForTrainer(c.Context(), caller(c), c.Params("quizId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(quiz)
}

type UpdateQuizRequest struct {
	Subject     string            `json:"subject"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Questions   []QuestionRequest `json:"questions" validate:"omitempty,min=1,dive"`

	PassingMarks    *int `json:"passing_marks"`
	DurationMinutes *int `json:"duration_minutes"`

	QuizDate     string `json:"quiz_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	StartInstant string `json:"start_instant"`
	EndInstant   string `json:"end_instant"`

	BatchType        string   `json:"batch_type"`
	Batches          []string `json:"batches"`
	PlacementBatches []string `json:"placement_batches"`

	ShuffleQuestions       *bool  `json:"shuffle_questions"`
	ShowResultsImmediately *bool  `json:"show_results_immediately"`
	AllowRetake            *bool  `json:"allow_retake"`
	Status                 string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func UpdateQuiz(c *fiber.Ctx) error {
	var req UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	patch := services.QuizPatch{
		Subject:                req.Subject,
		Title:                  req.Title,
		Description:            req.Description,
		PassingMarks:           req.PassingMarks,
		DurationMinutes:        req.DurationMinutes,
		BatchType:              req.BatchType,
		Batches:                req.Batches,
		PlacementBatches:       req.PlacementBatches,
		ShuffleQuestions:       req.ShuffleQuestions,
		ShowResultsImmediately: req.ShowResultsImmediately,
		AllowRetake:            req.AllowRetake,
		Status:                 req.Status,
	}
	if req.Questions != nil {
		patch.Questions = toQuestions(req.Questions)
	}
	if req.QuizDate != "" || req.StartInstant != "" || req.StartTime != "" || req.EndTime != "" {
		patch.Schedule = &services.ScheduleInput{
			StartInstant: req.StartInstant,
			EndInstant:   req.EndInstant,
			Date:         req.QuizDate,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
		}
	}

	quiz, err := quizService.UpdateQuiz(c.Context(), caller(c), c.Params("quizId"), patch)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(quiz)
}

func DeleteQuiz(c *fiber.Ctx) error {
	if err := quizService.DeleteQuiz(c.Context(), caller(c), c.Params("quizId")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func ListQuizSubmissions(c *fiber.Ctx) error {
	submissions, err := quizService.ListSubmissions(c.Context(), caller(c), c.Params("quizId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(submissions)
}

func BackfillSchedules(c *fiber.Ctx) error {
	updated, err := quizService.BackfillSchedules(c.Context(), caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"updated_count": updated})
}
