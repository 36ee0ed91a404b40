package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/middleware"
)

// LedgerHandler serves the account holder's operations
type LedgerHandler struct {
	exchange   usecase.ExchangeUseCase
	redemption usecase.RedemptionUseCase
	accounts   usecase.AccountUseCase
	logger     coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(
	exchange usecase.ExchangeUseCase,
	redemption usecase.RedemptionUseCase,
	accounts usecase.AccountUseCase,
	logger coreport.Logger,
) *LedgerHandler {
	return &LedgerHandler{
		exchange:   exchange,
		redemption: redemption,
		accounts:   accounts,
		logger:     logger,
	}
}

// Exchange handles POST /api/v1/exchange
func (h *LedgerHandler) Exchange(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req dto.ExchangeRequest
	if err := bindJSON(c, &req, true); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	result, err := h.exchange.Exchange(c.Request.Context(), usecase.ExchangeRequest{
		AccountID:  p.AccountID,
		TokenCount: req.Count(),
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExchangeResponse(result))
}

// Redeem handles POST /api/v1/keys/redeem
func (h *LedgerHandler) Redeem(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req dto.RedeemRequest
	if err := bindJSON(c, &req, false); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	result, err := h.redemption.Redeem(c.Request.Context(), p.AccountID, req.KeyValue)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRedeemResponse(result))
}

// Dashboard handles GET /api/v1/me/dashboard
func (h *LedgerHandler) Dashboard(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	dashboard, err := h.accounts.GetDashboard(c.Request.Context(), p.AccountID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(dashboard))
}

// DailyCode handles GET /api/v1/daily-code
func (h *LedgerHandler) DailyCode(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	code, err := h.accounts.GetDailyCode(c.Request.Context(), p.AccountID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDailyCodeResponse(code))
}
