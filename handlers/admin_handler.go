package handlers

import (
	"time"

	"github.com/KadariPavani/placement-training-backend/database"
	"github.com/gofiber/fiber/v2"
)

// CloseExpiredQuizzes archives active quizzes whose window has passed.
// The cron job does the same thing on a timer; this is the on-demand knob.
func CloseExpiredQuizzes(c *fiber.Ctx) error {
	closed, err := database.NewQuizStore().CloseExpired(c.Context(), time.Now().UTC())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"closed_count": closed})
}
