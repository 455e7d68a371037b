package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/gamerhub/marketplace/internal/api/http"
	"github.com/gamerhub/marketplace/internal/api/http/handlers"
	"github.com/gamerhub/marketplace/internal/auth"
	"github.com/gamerhub/marketplace/internal/config"
	"github.com/gamerhub/marketplace/internal/events"
	"github.com/gamerhub/marketplace/internal/observability"
	"github.com/gamerhub/marketplace/internal/persistence"
	"github.com/gamerhub/marketplace/internal/repository"
	"github.com/gamerhub/marketplace/internal/service"
	"github.com/gamerhub/marketplace/internal/worker"
)

const notificationQueueSize = 256

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	shutdownTracing, err := observability.InstallTracing(cfg.Tracing, cfg.App, os.Stdout)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	boostRepo := repository.NewBoostRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	walletRepo := repository.NewWalletRepository(pool)

	notifications := worker.NewNotificationWorker(events.NewInMemoryDispatcher(), notificationQueueSize, logger)
	service.NewNotificationService(notifications, logger, cfg.Notification).RegisterHandlers()
	notifications.Start()
	defer notifications.Stop()

	codec := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	throttle := auth.NewLoginThrottle(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow())

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Codec:      codec,
		Limiter:    throttle,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	listingService := service.NewListingService(listingRepo, notifications, logger)
	boostService := service.NewBoostService(boostRepo, notifications, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, listingRepo, notifications, logger)
	walletService := service.NewWalletService(walletRepo)

	metrics := observability.NewMetrics("marketplace")
	guard := auth.NewSessionGuard(auth.GuardConfig{
		Codec:              codec,
		Routes:             auth.NewRouteClassifier(cfg.Auth.ProtectedPaths...),
		CookieName:         cfg.Auth.CookieName,
		LoginPath:          cfg.Auth.LoginPath,
		RedirectWithReturn: cfg.Auth.RedirectWithReturn,
		Logger:             logger,
		Recorder:           metrics,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Sessions: handlers.NewSessionHandler(authService, codec, guard, handlers.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.App.IsProduction(),
		}),
		Listings:  handlers.NewListingsHandler(listingService, feedbackService, walletService),
		Boosts:    handlers.NewBoostsHandler(boostService),
		Dashboard: handlers.NewDashboardHandler(walletService),
		Guard:     guard,
		Metrics:   metrics,
		LoginPath: cfg.Auth.LoginPath,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.Strings("protected_paths", cfg.Auth.ProtectedPaths))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("fiber listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}
