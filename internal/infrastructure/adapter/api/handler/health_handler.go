package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/dto"
)

// PingFunc checks a backing dependency
type PingFunc func(ctx context.Context) error

// HealthHandler reports liveness and store reachability
type HealthHandler struct {
	ping   PingFunc
	logger coreport.Logger
}

// NewHealthHandler creates a health handler. A nil ping always reports ok.
func NewHealthHandler(ping PingFunc, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
