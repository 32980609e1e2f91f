package routes

import (
	"github.com/KadariPavani/placement-training-backend/handlers"
	"github.com/KadariPavani/placement-training-backend/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifications := api.Group("/student/notifications", middleware.Protected(), middleware.StudentRequired())
	notifications.Get("", handlers.StudentListNotifications)

	api.Use("/ws", middleware.Protected(), func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		studentID, _ := claims["user_id"].(string)
		c.Locals("studentID", studentID)
		return c.Next()
	})
	api.Get("/ws/notifications", websocket.New(handlers.ServeWs))
}
