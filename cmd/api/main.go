package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/supportstack/helpdesk-service/internal/api/http"
	"github.com/supportstack/helpdesk-service/internal/api/http/handlers"
	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/config"
	"github.com/supportstack/helpdesk-service/internal/observability"
	"github.com/supportstack/helpdesk-service/internal/persistence"
	"github.com/supportstack/helpdesk-service/internal/repository"
	"github.com/supportstack/helpdesk-service/internal/service"
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

	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	referenceRepo := repository.NewReferenceRepository(pool)

	sessions := auth.NewSessionStore(redis.Client, cfg.Auth.SessionTTL())

	authService := service.NewAuthService(*cfg, userRepo, sessions)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		CommentRepo:   commentRepo,
		UserRepo:      userRepo,
		ReferenceRepo: referenceRepo,
	})
	userService := service.NewUserService(userRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), sessions, userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthDeps := map[string]handlers.Pinger{"postgres": pg, "redis": redis}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps, metrics),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth.SecureCookies),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Reference:      handlers.NewReferenceHandler(referenceRepo),
		AdminUsers:     handlers.NewAdminUsersHandler(userService),
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
