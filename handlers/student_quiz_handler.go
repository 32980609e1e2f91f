package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func StudentListQuizzes(c *fiber.Ctx) error {
	summaries, err := quizService.ListForStudent(c.Context(), caller(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summaries)
}

func StudentGetQuiz(c *fiber.Ctx) error {
	view, err := quizService.GetForStudent(c.Context(), caller(c), c.Params("quizId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(view)
}

type SubmitQuizRequest struct {
	Answers          []string `json:"answers" validate:"required,min=1"`
	TimeSpentSeconds int      `json:"time_spent_seconds" validate:"gte=0"`
}

func SubmitQuiz(c *fiber.Ctx) error {
	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := quizService.Submit(c.Context(), caller(c), c.Params("quizId"), req.Answers, req.TimeSpentSeconds)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Quiz submitted successfully",
		"result":  result,
	})
}
