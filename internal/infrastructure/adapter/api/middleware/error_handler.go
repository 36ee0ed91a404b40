package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/requestid"
)

const internalErrorMessage = "Internal server error"

// StatusFor maps a domain error to its HTTP status. State-based rejections are
// 400; lost races and duplicates are 409.
func StatusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidInput:
		return http.StatusBadRequest
	case errs.KindConflict:
		if errors.Is(err, errs.ErrConcurrentModification) || errors.Is(err, errs.ErrDuplicateValue) {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the response body for err. Internal details are not exposed.
func NewErrorResponse(err error) dto.ErrorResponse {
	kind := errs.KindOf(err)
	message := err.Error()
	if kind == errs.KindInternal {
		message = internalErrorMessage
	}
	return dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Kind:    string(kind),
		Message: message,
	}
}

// AbortWithError writes err as a JSON error response and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusFor(err), NewErrorResponse(err))
}

// ErrorHandler middleware recovers from panics and returns appropriate error responses
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      rec,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": requestid.FromContext(c.Request.Context()),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    errs.CodeInternalServer,
					Kind:    string(errs.KindInternal),
					Message: internalErrorMessage,
				})
			}
		}()

		c.Next()
	}
}
