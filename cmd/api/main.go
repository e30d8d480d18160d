package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/weight-tracker/internal/api/http"
	"github.com/spec-kit/weight-tracker/internal/api/http/handlers"
	"github.com/spec-kit/weight-tracker/internal/auth"
	"github.com/spec-kit/weight-tracker/internal/config"
	"github.com/spec-kit/weight-tracker/internal/events"
	"github.com/spec-kit/weight-tracker/internal/observability"
	"github.com/spec-kit/weight-tracker/internal/persistence"
	"github.com/spec-kit/weight-tracker/internal/repository"
	"github.com/spec-kit/weight-tracker/internal/service"
	"github.com/spec-kit/weight-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	targetRepo := repository.NewTargetRepository(pool)
	measurementRepo := repository.NewMeasurementRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService, err := service.NewAuthService(cfg.Auth, userRepo)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		TargetRepo: targetRepo,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	targetService := service.NewTargetService(service.TargetDependencies{
		TargetRepo: targetRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Cache:      redis,
		Logger:     logger,
	})
	measurementService := service.NewMeasurementService(service.MeasurementDependencies{
		MeasurementRepo: measurementRepo,
		TargetRepo:      targetRepo,
		Dispatcher:      dispatcher,
	})
	roleService := service.NewRoleService(roleRepo)
	progressService := service.NewProgressService(targetRepo, measurementRepo, dispatcher, logger)

	worker.StartProgressWorker(progressService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Targets:        handlers.NewTargetsHandler(targetService),
		Measurements:   handlers.NewMeasurementsHandler(measurementService),
		Roles:          handlers.NewRolesHandler(roleService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
