package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/config"
	"github.com/vaulto-note/backend/internal/http/handlers"
	"github.com/vaulto-note/backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	users middleware.UserGetter,
	authHandler *handlers.AuthHandler,
	walletHandler *handlers.WalletHandler,
	userHandler *handlers.UserHandler,
	noteHandler *handlers.NoteHandler,
	aiHandler *handlers.AIHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/wallet/nonce", walletHandler.GetNonce)
	api.Post("/wallet/verify", walletHandler.VerifySignature)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, users, log))

	protected.Get("/users/me", userHandler.GetMe)

	protected.Get("/notes", noteHandler.ListNotes)
	protected.Post("/notes", noteHandler.CreateNote)
	protected.Get("/notes/:id", noteHandler.GetNote)
	protected.Put("/notes/:id", noteHandler.UpdateNote)
	protected.Delete("/notes/:id", noteHandler.DeleteNote)

	protected.Post("/ai/transcribe", aiHandler.Transcribe)
	protected.Post("/ai/improve", aiHandler.Improve)
}
