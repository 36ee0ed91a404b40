package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/api/middleware"
)

// bindJSON decodes the request body into req. An empty body leaves req untouched
// when allowEmpty is set.
func bindJSON(c *gin.Context, req any, allowEmpty bool) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request format: %s", errs.ErrInvalidInput, err.Error())
	}
	return nil
}

// accountIDParam parses the :id path parameter
func accountIDParam(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid account id %q", errs.ErrInvalidInput, c.Param("id"))
	}
	return id, nil
}

// principal returns the authenticated caller. Routes are always behind Authenticate.
func principal(c *gin.Context) (*entity.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return p, nil
}
