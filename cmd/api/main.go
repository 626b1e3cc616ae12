package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"handypro/internal/config"
	"handypro/internal/handler"
	"handypro/internal/middleware"
	"handypro/internal/realtime"
	"handypro/internal/repository"
	"handypro/internal/service"
	"handypro/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	hub := realtime.NewHub(services.Messaging)
	handlers := handler.NewHandlers(services, hub)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Catalog reads are public; booking creation is not.
	api.Get("/my-services", h.Catalog.ListServices)
	api.Get("/my-services/:id", h.Catalog.GetService)
	api.Get("/categories", h.Catalog.ListCategories)

	protected := api.Group("", middleware.AuthRequired(authService))

	protected.Post("/my-services/bookings", h.Booking.Create)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/bookings", h.Booking.ListMine)
	dashboard.Get("/bookings/:id", h.Booking.Get)
	dashboard.Post("/bookings/:id/cancel", h.Booking.Cancel)
	dashboard.Post("/bookings/:id/review", h.Booking.Review)
	dashboard.Get("/summary", middleware.RequireRole("provider"), h.Provider.Summary)

	provider := protected.Group("/provider", middleware.RequireRole("provider"))
	provider.Get("/requests", h.Provider.Requests)
	provider.Get("/history", h.Provider.History)
	provider.Post("/bookings/:id/confirm", h.Provider.Confirm)
	provider.Post("/bookings/:id/reject", h.Provider.Reject)
	provider.Post("/bookings/:id/complete", h.Provider.Complete)
	provider.Post("/services", h.Provider.CreateService)
	provider.Put("/availability", h.Provider.SetAvailability)

	payments := protected.Group("/payments")
	payments.Post("/initiate/:bookingId", h.Payment.Initiate)
	payments.Post("/verify/:bookingId", h.Payment.Verify)
	payments.Get("/history/:bookingId", h.Payment.History)

	conversations := protected.Group("/conversations")
	conversations.Post("/create", h.Conversation.Create)
	conversations.Get("/search", h.Conversation.Search)
	conversations.Get("/unread/:userId", h.Conversation.UnreadCount)
	conversations.Get("/:id/messages", h.Conversation.Messages)
	conversations.Get("/:userId/Allconversations", h.Conversation.ListAll)
	conversations.Put("/:id/read", h.Conversation.MarkRead)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllRead)

	protected.Post("/media", h.Media.Upload)

	app.Get("/ws/chat", h.Websocket.Authenticate, h.Websocket.Serve())
}
