package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/config"
	"github.com/vaulto-note/backend/internal/db"
	apphttp "github.com/vaulto-note/backend/internal/http"
	"github.com/vaulto-note/backend/internal/http/handlers"
	"github.com/vaulto-note/backend/internal/repositories"
	"github.com/vaulto-note/backend/internal/services"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)

	// Services
	authService := services.NewAuthService(userRepo, cfg, log)
	noteService := services.NewNoteService(noteRepo, log)
	aiClient := services.NewAIClient(cfg, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	walletHandler := handlers.NewWalletHandler(authService, log)
	userHandler := handlers.NewUserHandler(log)
	noteHandler := handlers.NewNoteHandler(noteService, log)
	aiHandler := handlers.NewAIHandler(aiClient, log)

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // voice notes
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, userRepo, authHandler, walletHandler, userHandler, noteHandler, aiHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
