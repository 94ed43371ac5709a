package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bizzul/santini-manager-sub003/docs"
	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"github.com/bizzul/santini-manager-sub003/internal/config"
	"github.com/bizzul/santini-manager-sub003/internal/database"
	"github.com/bizzul/santini-manager-sub003/internal/http/handler"
	"github.com/bizzul/santini-manager-sub003/internal/http/middleware"
	"github.com/bizzul/santini-manager-sub003/internal/http/router"
	"github.com/bizzul/santini-manager-sub003/internal/jobs"
	"github.com/bizzul/santini-manager-sub003/internal/logger"
	"github.com/bizzul/santini-manager-sub003/internal/repository"
	"github.com/bizzul/santini-manager-sub003/internal/service"
	"go.uber.org/zap"
)

// @title Santini Manager API
// @version 1.0
// @description Production dashboard API: order grouping, weekly throughput and annual trends per site

// @contact.name API Support
// @contact.email support@bizzul.ch

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch cfg.App.Environment {
	case "production":
		docs.SwaggerInfo.Host = "api.santini-manager.bizzul.ch"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	actionRepo := repository.NewActionRepository(db)
	productRepo := repository.NewProductRepository(db)
	siteRepo := repository.NewSiteRepository(db)

	// Services
	dashboardService := service.NewDashboardService(taskRepo, actionRepo, &cfg.Dashboard, log)
	productService := service.NewProductService(productRepo, log)

	// Middleware
	tokenValidator := auth.NewValidator(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewMiddleware(tokenValidator, cfg.Auth.APIKey, log)
	siteFilterMiddleware := middleware.NewSiteFilterMiddleware(log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	productHandler := handler.NewProductHandler(productService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		siteFilterMiddleware,
		rateLimiter,
		dashboardHandler,
		productHandler,
	)

	// Background cache warmer
	scheduler := jobs.NewScheduler(log)
	refreshJob := jobs.NewMetricsRefreshJob(dashboardService, siteRepo, log, jobs.DefaultRefreshTimeout)
	if err := scheduler.AddJob(jobs.MetricsRefreshJobName, cfg.Dashboard.RefreshCron, refreshJob.Run); err != nil {
		log.Error("Failed to register metrics refresh job", zap.Error(err))
	} else {
		scheduler.Start()
		log.Info("Scheduler started with metrics refresh job",
			zap.String("cron_expr", cfg.Dashboard.RefreshCron),
		)
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

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
