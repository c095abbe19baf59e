package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"amersur-crm/internal/config"
	"amersur-crm/internal/handler"
	"amersur-crm/internal/middleware"
	"amersur-crm/internal/repository"
	"amersur-crm/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg := config.Load()
	setupLogger(cfg)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis, unread counts will hit postgres directly")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, cfg)
	handlers := handler.NewHandlers(services, repos, cfg)

	services.Reminder.Start()
	defer services.Reminder.Stop()

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
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-api-key",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services)

	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// The bot authenticates with its pre-shared key, not a user session.
	v1.Post("/whatsapp/bot/status", h.Bot.UpdateStatus)

	protected := v1.Group("", middleware.AuthRequired(services.Auth))

	bot := protected.Group("/whatsapp/bot", middleware.RequireAdmin())
	bot.Get("/status", h.Bot.GetStatus)
	bot.Get("/stream", h.Bot.Stream)

	notificaciones := protected.Group("/notificaciones")
	notificaciones.Get("/", h.Notification.List)
	notificaciones.Post("/", h.Notification.Actions)
	notificaciones.Get("/unread-count", h.Notification.GetUnreadCount)
	notificaciones.Get("/preferences", h.Preference.GetPreferences)
	notificaciones.Put("/preferences", h.Preference.UpdatePreferences)
	notificaciones.Patch("/:id/read", h.Notification.MarkAsRead)

	pushGroup := protected.Group("/push")
	pushGroup.Post("/subscribe", h.Push.Subscribe)
	pushGroup.Delete("/subscribe", h.Push.Unsubscribe)
}
