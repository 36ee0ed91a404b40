package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// Role is the closed set of account roles
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a stored or transported role string.
// Unknown values are rejected rather than defaulted.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRole, s)
	}
}

// IsAdmin reports whether the role grants administrative operations
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
