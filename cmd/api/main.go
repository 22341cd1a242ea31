package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/mystarhq/notify-api/internal/authclient"
	"github.com/mystarhq/notify-api/internal/config"
	"github.com/mystarhq/notify-api/internal/handler"
	"github.com/mystarhq/notify-api/internal/infra/postgresql"
	"github.com/mystarhq/notify-api/internal/infra/postgresql/migrations"
	infraredis "github.com/mystarhq/notify-api/internal/infra/redis"
	"github.com/mystarhq/notify-api/internal/observability"
	"github.com/mystarhq/notify-api/internal/provider"
	"github.com/mystarhq/notify-api/internal/repository"
	"github.com/mystarhq/notify-api/internal/service"
	"github.com/mystarhq/notify-api/internal/transport"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development convenience; production uses real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	emailProvider, err := provider.NewResendProvider(cfg.ResendEndpoint, cfg.ResendAPIKey)
	if err != nil {
		logger.Fatal("email provider initialization failed", zap.Error(err))
	}

	authClient, err := authclient.New(cfg.AuthURL, cfg.AuthServiceKey)
	if err != nil {
		logger.Fatal("auth client initialization failed", zap.Error(err))
	}

	templateCache, err := infraredis.NewJSONCache(rdb, "templates")
	if err != nil {
		logger.Fatal("template cache initialization failed", zap.Error(err))
	}

	catalogCache, err := infraredis.NewJSONCache(rdb, "catalog")
	if err != nil {
		logger.Fatal("catalog cache initialization failed", zap.Error(err))
	}

	limiter, err := infraredis.NewRedisRateLimiter(rdb, cfg.SendRatePerMin)
	if err != nil {
		logger.Fatal("rate limiter initialization failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	emailService, err := service.NewEmailService(
		repository.NewGormTemplateRepo(db),
		repository.NewGormAuditLogRepo(db),
		templateCache,
		emailProvider,
		authClient,
		service.Options{
			SiteURL:      cfg.SiteURL,
			FromEmail:    cfg.FromEmail,
			ReplyToEmail: cfg.ReplyToEmail,
		},
		logger,
	)
	if err != nil {
		logger.Fatal("email service initialization failed", zap.Error(err))
	}
	emailService.SetMetrics(metrics)

	catalogService, err := service.NewCatalogService(repository.NewGormCatalogRepo(db), catalogCache, logger)
	if err != nil {
		logger.Fatal("catalog service initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          transport.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(transport.CORSMiddleware())
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(metrics.Handler())(c.Context())
		return nil
	})

	if err := handler.RegisterEmailRoutes(app, emailService, authClient, limiter); err != nil {
		logger.Fatal("email route registration failed", zap.Error(err))
	}
	if err := handler.RegisterAuthRoutes(app, emailService); err != nil {
		logger.Fatal("auth route registration failed", zap.Error(err))
	}
	if err := handler.RegisterCatalogRoutes(app, catalogService); err != nil {
		logger.Fatal("catalog route registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("notify-api started", zap.Int("port", cfg.APIPort))
		return app.Listen(fmt.Sprintf(":%d", cfg.APIPort))
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited with error", zap.Error(err))
	}
}
