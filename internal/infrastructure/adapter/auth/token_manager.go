// Package auth turns bearer tokens into principals.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
)

const minSigningKeyLength = 32

// Claims extends jwt.RegisteredClaims with the principal's role and status
type Claims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// TokenManager signs and validates HS256 principal tokens
type TokenManager struct {
	signingKey   []byte
	issuer       string
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewTokenManager creates a token manager. The signing key must be at least 32 bytes.
func NewTokenManager(signingKey, issuer string, ttl time.Duration, timeProvider coreport.TimeProvider) (*TokenManager, error) {
	if len(signingKey) < minSigningKeyLength {
		return nil, fmt.Errorf("%w: signing key must be at least %d bytes", errs.ErrInvalidInput, minSigningKeyLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive", errs.ErrInvalidInput)
	}
	return &TokenManager{
		signingKey:   []byte(signingKey),
		issuer:       issuer,
		ttl:          ttl,
		timeProvider: timeProvider,
	}, nil
}

// Issue signs a token for principal and returns it with its expiry
func (m *TokenManager) Issue(principal entity.Principal) (string, time.Time, error) {
	if principal.AccountID == 0 {
		return "", time.Time{}, fmt.Errorf("%w: account id is required", errs.ErrInvalidInput)
	}
	if _, err := entity.ParseRole(string(principal.Role)); err != nil {
		return "", time.Time{}, err
	}

	now := m.timeProvider.Now()
	exp := now.Add(m.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(principal.AccountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
		Role:   string(principal.Role),
		Active: principal.IsActive,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: sign token: %s", errs.ErrInternal, err.Error())
	}
	return signed, exp, nil
}

// Parse validates tokenStr and returns its principal. Every failure is ErrUnauthorized.
func (m *TokenManager) Parse(tokenStr string) (*entity.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return m.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.timeProvider.Now),
	)
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "token expired"
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrUnauthorized, reason)
	}

	accountID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || accountID == 0 {
		return nil, fmt.Errorf("%w: invalid subject", errs.ErrUnauthorized)
	}
	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid role", errs.ErrUnauthorized)
	}

	return &entity.Principal{
		AccountID: accountID,
		Role:      role,
		IsActive:  claims.Active,
	}, nil
}
