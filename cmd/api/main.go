package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/primemotors/inventory-service/internal/api/http"
	"github.com/primemotors/inventory-service/internal/api/http/handlers"
	"github.com/primemotors/inventory-service/internal/auth"
	"github.com/primemotors/inventory-service/internal/clock"
	"github.com/primemotors/inventory-service/internal/config"
	"github.com/primemotors/inventory-service/internal/events"
	"github.com/primemotors/inventory-service/internal/observability"
	"github.com/primemotors/inventory-service/internal/persistence"
	"github.com/primemotors/inventory-service/internal/repository"
	"github.com/primemotors/inventory-service/internal/service"
	"github.com/primemotors/inventory-service/internal/storage"
	"github.com/primemotors/inventory-service/internal/worker"
	"github.com/primemotors/inventory-service/migrations"
)

// multipart framing on top of the largest accepted upload
const bodyLimitSlack = 1 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	for _, key := range cfg.InsecureDefaults() {
		logger.Warn("using built-in default secret; set it before deploying", zap.String("env", key))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	unitRepo := repository.NewInventoryRepository(pool)

	if _, err := service.SeedAdmin(ctx, userRepo, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	clk := clock.System()
	secrets := auth.NewRotatingSecret(cfg.Auth.RotationSecret, clk)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), clk)

	files, err := storage.NewFileStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo,
		Tokens:   tokens,
		Secrets:  secrets,
		Limiter:  service.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger),
		Logger:   logger,
	})
	inventoryService := service.NewInventoryService(service.InventoryDependencies{
		UnitRepo:   unitRepo,
		Files:      files,
		Dispatcher: dispatcher,
		Clock:      clk,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Uploads.MaxBytes) + bodyLimitSlack,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Inventory:      handlers.NewInventoryHandler(inventoryService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		EditGuard:      auth.NewEditPasswordGuard(secrets, logger),
		EditPolicy:     auth.EditPolicyFromConfig(cfg.EditPolicy),
		Metrics:        metrics,
		UploadDir:      cfg.Uploads.Dir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
