package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

const principalKey = "principal"

// PrincipalParser turns a bearer token into a principal
type PrincipalParser interface {
	Parse(token string) (*entity.Principal, error)
}

// Authenticate requires a valid bearer token and stores its principal on the context
func Authenticate(parser PrincipalParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, errs.ErrUnauthorized)
			return
		}

		principal, err := parser.Parse(token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireActive rejects inactive principals
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := PrincipalFrom(c)
		if err := principal.RequireActive(); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects principals that are not active admins
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := PrincipalFrom(c)
		if err := principal.RequireAdmin(); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal set by Authenticate
func PrincipalFrom(c *gin.Context) (*entity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*entity.Principal)
	return principal, ok && principal != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
