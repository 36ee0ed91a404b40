package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups everything the router serves
type Handlers struct {
	Ledger *handler.LedgerHandler
	Admin  *handler.AdminHandler
	Health *handler.HealthHandler
	// Metrics is mounted at MetricsPath when non-nil
	Metrics     http.Handler
	MetricsPath string
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, tokens middleware.PrincipalParser) {
	router.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		router.GET(h.MetricsPath, gin.WrapH(h.Metrics))
	}

	api := router.Group("/api/v1", middleware.Authenticate(tokens))
	{
		// readable by inactive accounts
		api.GET("/me/dashboard", h.Ledger.Dashboard)

		active := api.Group("", middleware.RequireActive())
		active.POST("/exchange", h.Ledger.Exchange)
		active.POST("/keys/redeem", h.Ledger.Redeem)
		active.GET("/daily-code", h.Ledger.DailyCode)
	}

	admin := api.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/accounts", h.Admin.SearchAccounts)
		admin.GET("/accounts/:id", h.Admin.GetAccount)
		admin.POST("/accounts/:id/balance", h.Admin.AdjustBalance)
		admin.POST("/accounts/:id/expiry", h.Admin.AdjustExpiry)
		admin.PATCH("/accounts/:id/status", h.Admin.SetAccountStatus)
		admin.POST("/keys", h.Admin.MintKey)
		admin.POST("/inventory", h.Admin.IngestInventory)
		admin.PUT("/daily-code", h.Admin.SetDailyCode)
		admin.GET("/stats", h.Admin.Stats)
	}
}

// MiddlewareConfig holds the global middleware settings
type MiddlewareConfig struct {
	AllowedOrigins []string
	CORSMaxAge     time.Duration
	// Observer receives HTTP metrics when non-nil
	Observer middleware.RequestObserver
}

// SetupMiddlewares configures global middlewares for the API.
// The request id is assigned before anything logs.
func SetupMiddlewares(router *gin.Engine, cfg MiddlewareConfig, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	if cfg.Observer != nil {
		router.Use(middleware.Metrics(cfg.Observer, timeProvider))
	}
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.CORSMaxAge))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    errs.CodeNotFound,
			Kind:    string(errs.KindNotFound),
			Message: "route not found",
		})
	})
}
