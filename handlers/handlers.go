package handlers

import (
	"errors"
	"log"

	"github.com/KadariPavani/placement-training-backend/database"
	"github.com/KadariPavani/placement-training-backend/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var validate = validator.New()

var (
	quizService       *services.QuizService
	studentStore      *database.StudentStore
	notificationStore *database.NotificationStore
)

// Init wires the handler package to its collaborators. Called once from
// main after the database is up.
func Init(svc *services.QuizService, students *database.StudentStore, notifications *database.NotificationStore) {
	quizService = svc
	studentStore = students
	notificationStore = notifications
}

// caller builds the CallerContext from the verified JWT claims.
func caller(c *fiber.Ctx) services.CallerContext {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	subject, _ := claims["subject"].(string)
	return services.CallerContext{ID: id, Role: role, Subject: subject}
}

// serviceError maps core errors onto HTTP responses. Access-denied reasons
// stay in the logs; clients get a generic message.
func serviceError(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message})
	}
	var denied *services.AccessDeniedError
	if errors.As(err, &denied) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this quiz"})
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	case errors.Is(err, services.ErrAlreadySubmitted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted this quiz"})
	case errors.Is(err, services.ErrSubmitConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Submission conflicted, please try again"})
	}
	log.Printf("handler error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
}
