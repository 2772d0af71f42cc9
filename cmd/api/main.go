package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/exportracker/quotation-backend/api/routes"
	"github.com/exportracker/quotation-backend/internal/companies"
	"github.com/exportracker/quotation-backend/internal/destinations"
	"github.com/exportracker/quotation-backend/internal/quotations"
	"github.com/exportracker/quotation-backend/internal/users"
	"github.com/exportracker/quotation-backend/pkg/config"
	"github.com/exportracker/quotation-backend/pkg/db"
	"github.com/exportracker/quotation-backend/pkg/instance"
	"github.com/exportracker/quotation-backend/pkg/logger"
	"github.com/exportracker/quotation-backend/pkg/metrics"
	"github.com/exportracker/quotation-backend/pkg/migrate"
	"github.com/exportracker/quotation-backend/pkg/outbox"
	"github.com/exportracker/quotation-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	// Redis is optional in dev: without it identity lookups are uncached and
	// idempotency replay and throttling are disabled.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis not configured, idempotency and rate limiting disabled")
	}

	server, err := buildServer(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(ctx, "failed to wire api", err)
		_ = closeAll(dbClient, redisClient)
		os.Exit(1)
	}

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     server.Addr,
		"instance": instance.GetID("local"),
	})
	logg.Info(runCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(runCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = multierr.Combine(server.Shutdown(shutdownCtx), closeAll(dbClient, redisClient))
	if err != nil {
		logg.Error(runCtx, "error during shutdown", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}

func buildServer(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (*http.Server, error) {
	conn := dbClient.DB()

	// A typed nil *redis.Client must not reach the interface parameter.
	var usersSvc users.Service
	var err error
	if redisClient != nil {
		usersSvc, err = users.NewService(users.NewRepository(conn), redisClient, cfg.Identity.CacheTTL, logg)
	} else {
		usersSvc, err = users.NewService(users.NewRepository(conn), nil, 0, logg)
	}
	if err != nil {
		return nil, err
	}

	companyRepo := companies.NewRepository(conn)
	destinationRepo := destinations.NewRepository(conn)
	companiesSvc, err := companies.NewService(companyRepo)
	if err != nil {
		return nil, err
	}
	destinationsSvc, err := destinations.NewService(destinationRepo)
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	params := quotations.ServiceParams{
		Repo:          quotations.NewRepository(conn),
		Companies:     companyRepo,
		Destinations:  destinationRepo,
		Tx:            dbClient,
		Metrics:       metrics.NewQuotationMetrics(reg),
		Logger:        logg,
		ExportMaxRows: cfg.API.ExportMaxRows,
	}
	if cfg.FeatureFlags.Outbox {
		params.Outbox = outbox.NewService(outbox.NewRepository(conn), logg)
	}
	quotationsSvc, err := quotations.NewService(params)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr: ":" + resolvePort(cfg.App.Port),
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, usersSvc, companiesSvc, destinationsSvc, quotationsSvc,
			metrics.NewHTTPMetrics(reg), metrics.Handler(reg)),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func resolvePort(configured string) string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return configured
}

func closeAll(dbClient *db.Client, redisClient *redis.Client) error {
	var err error
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	if dbClient != nil {
		err = multierr.Append(err, dbClient.Close())
	}
	return err
}
