package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/middleware"
)

const defaultMaxUploadBytes = 32 << 20

// AdminHandler serves the administrative operations. Routes are behind RequireAdmin.
type AdminHandler struct {
	admin          usecase.AdminUseCase
	maxUploadBytes int64
	logger         coreport.Logger
}

// NewAdminHandler creates a new admin handler instance. maxUploadBytes bounds inventory uploads.
func NewAdminHandler(admin usecase.AdminUseCase, maxUploadBytes int64, logger coreport.Logger) *AdminHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &AdminHandler{
		admin:          admin,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// AdjustBalance handles POST /api/v1/admin/accounts/:id/balance
func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	accountID, err := accountIDParam(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req dto.AdjustBalanceRequest
	if err := bindJSON(c, &req, false); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	balance, err := h.admin.AdjustBalance(c.Request.Context(), accountID, req.Delta, req.Reason)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdjustBalanceResponse{NewBalance: balance})
}

// AdjustExpiry handles POST /api/v1/admin/accounts/:id/expiry
func (h *AdminHandler) AdjustExpiry(c *gin.Context) {
	accountID, err := accountIDParam(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req dto.AdjustExpiryRequest
	if err := bindJSON(c, &req, false); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	expiry, err := h.admin.AdjustExpiry(c.Request.Context(), accountID, req.DeltaDays, req.Reason)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdjustExpiryResponse{NewExpiryTime: expiry})
}

// SetAccountStatus handles PATCH /api/v1/admin/accounts/:id/status
func (h *AdminHandler) SetAccountStatus(c *gin.Context) {
	accountID, err := accountIDParam(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req dto.SetAccountStatusRequest
	if err := bindJSON(c, &req, false); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if err := h.admin.SetAccountActive(c.Request.Context(), accountID, *req.IsActive); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAccount handles GET /api/v1/admin/accounts/:id
func (h *AdminHandler) GetAccount(c *gin.Context) {
	accountID, err := accountIDParam(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	details, err := h.admin.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountDetailsResponse(details))
}

// SearchAccounts handles GET /api/v1/admin/accounts?q=&limit=
func (h *AdminHandler) SearchAccounts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			middleware.AbortWithError(c, fmt.Errorf("%w: invalid limit %q", errs.ErrInvalidInput, raw))
			return
		}
		limit = n
	}

	accounts, err := h.admin.SearchAccounts(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountListResponse(accounts))
}

// MintKey handles POST /api/v1/admin/keys
func (h *AdminHandler) MintKey(c *gin.Context) {
	var req dto.MintKeyRequest
	if err := bindJSON(c, &req, false); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	key, err := h.admin.MintKey(c.Request.Context(), usecase.MintKeyRequest{
		CreditAmount: req.CreditAmount,
		DurationDays: req.DurationDays,
		Description:  req.Description,
		CustomValue:  req.CustomValue,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MintKeyResponse{Key: dto.NewKeyResponse(key)})
}

// IngestInventory handles POST /api/v1/admin/inventory with a multipart "file" field
func (h *AdminHandler) IngestInventory(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.AbortWithError(c, fmt.Errorf("%w: upload too large, limit is %d bytes", errs.ErrInvalidInput, maxErr.Limit))
			return
		}
		middleware.AbortWithError(c, fmt.Errorf("%w: multipart field \"file\" is required", errs.ErrEmptyUpload))
		return
	}

	expiresInDays := 0
	if raw := strings.TrimSpace(c.PostForm("expiresInDays")); raw != "" {
		expiresInDays, err = strconv.Atoi(raw)
		if err != nil {
			middleware.AbortWithError(c, fmt.Errorf("%w: expiresInDays must be an integer", errs.ErrInvalidAmount))
			return
		}
	}

	file, err := header.Open()
	if err != nil {
		middleware.AbortWithError(c, fmt.Errorf("%w: open upload: %s", errs.ErrInvalidInput, err.Error()))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		middleware.AbortWithError(c, fmt.Errorf("%w: read upload: %s", errs.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.admin.IngestInventory(c.Request.Context(), usecase.IngestRequest{
		Lines:         strings.Split(string(content), "\n"),
		ExpiresInDays: expiresInDays,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	h.logger.Info("Inventory uploaded", map[string]any{
		"file_name": header.Filename,
		"size":      header.Size,
		"lines":     count,
	})
	c.JSON(http.StatusOK, dto.IngestResponse{InsertedCount: count})
}

// SetDailyCode handles PUT /api/v1/admin/daily-code
func (h *AdminHandler) SetDailyCode(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req dto.DailyCodeRequest
	if err := bindJSON(c, &req, false); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	code, err := h.admin.SetDailyCode(c.Request.Context(), p.AccountID, req.Code)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDailyCodeResponse(code))
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}
