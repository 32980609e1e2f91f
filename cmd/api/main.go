package main

import (
	"log"
	"time"

	config "github.com/KadariPavani/placement-training-backend/configs"
	"github.com/KadariPavani/placement-training-backend/database"
	"github.com/KadariPavani/placement-training-backend/handlers"
	"github.com/KadariPavani/placement-training-backend/jobs"
	"github.com/KadariPavani/placement-training-backend/notifications"
	"github.com/KadariPavani/placement-training-backend/routes"
	"github.com/KadariPavani/placement-training-backend/services"
	"github.com/KadariPavani/placement-training-backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.EnsureIndexes()
	database.SeedAdmin()
	notifications.InitEmailService()

	quizStore := database.NewQuizStore()
	batchStore := database.NewBatchStore()
	studentStore := database.NewStudentStore()
	trainerStore := database.NewTrainerStore()
	notificationStore := database.NewNotificationStore()

	resolver := services.NewBatchResolver(batchStore, config.Bool("STRICT_BATCH_RESOLUTION"))
	gate := services.AccessGate{EnforceWindow: config.Bool("ENFORCE_QUIZ_WINDOW")}
	notifier := notifications.NewBatchNotifier(notificationStore, studentStore)
	quizService := services.NewQuizService(quizStore, studentStore, trainerStore, resolver, gate, notifier)

	handlers.Init(quizService, studentStore, notificationStore)

	go websocket.RunHub()

	c := cron.New()
	c.AddFunc("*/10 * * * *", jobs.CloseExpiredQuizzes)
	go c.Start()
	log.Println("✅ Cron job for quiz windows scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Placement Training Admin",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	routes.QuizRoutes(app)
	routes.NotificationRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
