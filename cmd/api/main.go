package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirhossein-jamali/credit-exchange/internal/app"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/metrics"
	timeProvider "github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
	defer appLogger.Flush()

	if warnings := config.ProductionWarnings(cfg); len(warnings) > 0 {
		appLogger.Warn("Potential security issues in production configuration", map[string]any{
			"warnings": warnings,
		})
	}

	tp := timeProvider.NewRealTimeProvider()

	container, err := app.New(context.Background(), cfg, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to initialize ledger", map[string]any{
			"error": err.Error(),
		})
		appLogger.Flush()
		os.Exit(1)
	}
	defer container.Close()

	if err := container.SeedAdmin(context.Background()); err != nil {
		appLogger.Error("Failed to create default accounts", map[string]any{
			"error": err.Error(),
		})
	}

	handlers := routes.Handlers{
		Ledger: handler.NewLedgerHandler(container.Exchange, container.Redemption, container.Accounts, appLogger),
		Admin:  handler.NewAdminHandler(container.Admin, cfg.Server.MaxUploadBytes, appLogger),
		Health: handler.NewHealthHandler(container.Ping, appLogger),
	}
	middlewareConfig := routes.MiddlewareConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CORSMaxAge:     cfg.CORS.MaxAge,
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{})
		handlers.MetricsPath = cfg.Metrics.Path
		middlewareConfig.Observer = metrics.NewHTTPMetrics(container.Registry)
	}

	router := gin.New()
	routes.SetupMiddlewares(router, middlewareConfig, appLogger, tp)
	routes.SetupRoutes(router, handlers, container.Tokens)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			appLogger.Flush()
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}
