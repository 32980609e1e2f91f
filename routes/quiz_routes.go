package routes

import (
	"github.com/KadariPavani/placement-training-backend/handlers"
	"github.com/KadariPavani/placement-training-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	trainer := api.Group("/trainer/quizzes", middleware.Protected(), middleware.TrainerRequired())
	trainer.Post("", handlers.CreateQuiz)
	trainer.Get("", handlers.ListQuizzes)
	trainer.Post("/backfill-schedule", handlers.BackfillSchedules)
	trainer.Get("/:quizId", handlers.GetQuiz)
	trainer.Put("/:quizId", handlers.UpdateQuiz)
	trainer.Delete("/:quizId", handlers.DeleteQuiz)
	trainer.Get("/:quizId/submissions", handlers.ListQuizSubmissions)

	student := api.Group("/student/quizzes", middleware.Protected(), middleware.StudentRequired())
	student.Get("", handlers.StudentListQuizzes)
	student.Get("/:quizId", handlers.StudentGetQuiz)
	student.Post("/:quizId/submit", handlers.SubmitQuiz)

	admin := api.Group("/admin/quizzes", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/close-expired", handlers.CloseExpiredQuizzes)
}
