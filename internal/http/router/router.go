package router

import (
	"encoding/json"
	"net/http"

	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"github.com/bizzul/santini-manager-sub003/internal/config"
	"github.com/bizzul/santini-manager-sub003/internal/database"
	"github.com/bizzul/santini-manager-sub003/internal/http/handler"
	"github.com/bizzul/santini-manager-sub003/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/bizzul/santini-manager-sub003/docs" // Import generated swagger docs
)

type Router struct {
	cfg                  *config.Config
	logger               *zap.Logger
	db                   *gorm.DB
	authMiddleware       *auth.Middleware
	siteFilterMiddleware *middleware.SiteFilterMiddleware
	rateLimiter          *middleware.RateLimiter
	dashboardHandler     *handler.DashboardHandler
	productHandler       *handler.ProductHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	siteFilterMiddleware *middleware.SiteFilterMiddleware,
	rateLimiter *middleware.RateLimiter,
	dashboardHandler *handler.DashboardHandler,
	productHandler *handler.ProductHandler,
) *Router {
	return &Router{
		cfg:                  cfg,
		logger:               logger,
		db:                   db,
		authMiddleware:       authMiddleware,
		siteFilterMiddleware: siteFilterMiddleware,
		rateLimiter:          rateLimiter,
		dashboardHandler:     dashboardHandler,
		productHandler:       productHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
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
			"stats":   stats,
		})
	})

	// Combined readiness check
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

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireAuth)
			r.Use(rt.siteFilterMiddleware.Filter)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/metrics", rt.dashboardHandler.GetMetrics)
				r.Get("/production", rt.dashboardHandler.GetProduction)
				r.Get("/weekly", rt.dashboardHandler.GetWeekly)
				r.Get("/annual", rt.dashboardHandler.GetAnnual)
			})

			r.Get("/products", rt.productHandler.List)
		})
	})

	return r
}
