package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/database"
	"github.com/pharmacast/workforce-api/internal/http/handler"
	"github.com/pharmacast/workforce-api/internal/http/middleware"
	"github.com/pharmacast/workforce-api/internal/warehouse"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/pharmacast/workforce-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	warehouse         *warehouse.Client
	adminMiddleware   func(http.Handler) http.Handler
	rateLimiter       *middleware.RateLimiter
	projectionHandler *handler.ProjectionHandler
	snapshotHandler   *handler.SnapshotHandler
	importHandler     *handler.ImportHandler
	openDataHandler   *handler.OpenDataHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	warehouseClient *warehouse.Client,
	adminMiddleware func(http.Handler) http.Handler,
	rateLimiter *middleware.RateLimiter,
	projectionHandler *handler.ProjectionHandler,
	snapshotHandler *handler.SnapshotHandler,
	importHandler *handler.ImportHandler,
	openDataHandler *handler.OpenDataHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		warehouse:         warehouseClient,
		adminMiddleware:   adminMiddleware,
		rateLimiter:       rateLimiter,
		projectionHandler: projectionHandler,
		snapshotHandler:   snapshotHandler,
		importHandler:     importHandler,
		openDataHandler:   openDataHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check (database plus the optional CPWS warehouse)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// The warehouse is optional; "disabled" does not fail readiness
		whStatus := rt.warehouse.HealthCheck(r.Context())
		checks["warehouse"] = whStatus
		if whStatus.Status == "unhealthy" {
			allHealthy = false
		}

		w.Header().Set("Content-Type", "application/json")
		status := map[string]interface{}{
			"status": "healthy",
			"checks": checks,
		}
		if !allHealthy {
			status["status"] = "unhealthy"
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(status)
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Read-only routes (no auth required)
		r.Get("/projections", rt.projectionHandler.Get)
		r.Get("/projections/chart", rt.projectionHandler.Chart)
		r.Get("/projections/export", rt.projectionHandler.Export)
		r.Get("/growth-rates", rt.projectionHandler.GrowthRates)
		r.Get("/snapshots", rt.snapshotHandler.List)
		r.Get("/pharmacies", rt.openDataHandler.PharmacyList)

		// Admin routes (data mutation)
		r.Group(func(r chi.Router) {
			r.Use(rt.adminMiddleware)

			r.Post("/snapshots", rt.snapshotHandler.Create)
			r.Delete("/snapshots/{id}", rt.snapshotHandler.Delete)
			r.Post("/imports", rt.importHandler.Create)
			r.Get("/imports", rt.importHandler.List)
			r.Get("/imports/{id}", rt.importHandler.Get)
		})
	})

	return r
}
