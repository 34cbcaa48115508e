package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pharmacast/workforce-api/docs"
	"github.com/pharmacast/workforce-api/internal/auth"
	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/database"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/http/handler"
	"github.com/pharmacast/workforce-api/internal/http/middleware"
	"github.com/pharmacast/workforce-api/internal/http/router"
	"github.com/pharmacast/workforce-api/internal/jobs"
	"github.com/pharmacast/workforce-api/internal/logger"
	"github.com/pharmacast/workforce-api/internal/opendata"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/service"
	"github.com/pharmacast/workforce-api/internal/storage"
	"github.com/pharmacast/workforce-api/internal/warehouse"
	"go.uber.org/zap"
)

// @title Pharmacast Workforce API
// @version 1.0
// @description Pharmacy workforce supply and demand projection API

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key for administrative operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "workforce-api-staging.azurecontainerapps.io"
	case "production":
		docs.SwaggerInfo.Host = "workforce.pharmacast.uk"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema migrations run through cmd/migrate against postgres. The
	// sqlite driver is for local runs, where auto-migration is enough.
	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// CPWS warehouse connection (optional). The API serves projections from
	// configured baselines when the warehouse is not available.
	warehouseClient, err := warehouse.NewClient(&cfg.Warehouse, log)
	if err != nil {
		log.Warn("Warehouse connection failed, continuing without it", zap.Error(err))
		warehouseClient = nil
	}

	// Repositories
	snapshotRepo := repository.NewSnapshotRepository(db)
	flowRepo := repository.NewFlowRepository(db)
	projectionRepo := repository.NewProjectionRepository(db)
	importRepo := repository.NewImportRepository(db)

	// Services
	projectionService := service.NewProjectionService(snapshotRepo, projectionRepo, warehouseClient, &cfg.Projection, cfg.Ingest.Country, log)
	snapshotService := service.NewSnapshotService(snapshotRepo, cfg.Ingest.Country, log)
	ingestService := service.NewIngestService(snapshotRepo, flowRepo, importRepo, &cfg.Ingest, cfg.Projection.BaselineMonth, log)
	artifactService := service.NewArtifactService(projectionService, fileStorage, log)

	// Middleware
	verifier := auth.NewVerifier(cfg.Auth.ApiKey, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, log)
	adminMiddleware := middleware.RequireAdmin(verifier, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	projectionHandler := handler.NewProjectionHandler(projectionService, artifactService, log)
	snapshotHandler := handler.NewSnapshotHandler(snapshotService, log)
	importHandler := handler.NewImportHandler(ingestService, log)
	openDataHandler := handler.NewOpenDataHandler(opendata.NewClient(&cfg.OpenData, log), log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		warehouseClient,
		adminMiddleware,
		rateLimiter,
		projectionHandler,
		snapshotHandler,
		importHandler,
		openDataHandler,
	)

	// Periodic projection refresh keeps stored runs and artifacts current
	// with the latest warehouse baselines.
	var scheduler *jobs.Scheduler
	if cfg.Warehouse.RefreshEnabled {
		scheduler = jobs.NewScheduler(log)

		source := domain.BaselineSource(cfg.Projection.DefaultSource)
		if err := jobs.RegisterRefreshJob(
			scheduler,
			projectionService,
			artifactService,
			source,
			log,
			cfg.Warehouse.RefreshCron,
			cfg.Warehouse.RefreshTimeoutDuration(),
			true, // refresh once on startup
		); err != nil {
			log.Error("Failed to register refresh job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with projection refresh job",
				zap.String("cron_expr", cfg.Warehouse.RefreshCron),
				zap.Duration("timeout", cfg.Warehouse.RefreshTimeoutDuration()),
			)
		}
	} else {
		log.Info("Periodic projection refresh disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if warehouseClient != nil {
			if err := warehouseClient.Close(); err != nil {
				log.Warn("Error closing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
