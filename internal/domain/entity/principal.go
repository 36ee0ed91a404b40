package entity

import (
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// Principal is the authenticated caller supplied by the identity provider
type Principal struct {
	AccountID uint64
	Role      Role
	IsActive  bool
}

// RequireActive rejects inactive principals
func (p *Principal) RequireActive() error {
	if p == nil || p.AccountID == 0 {
		return errs.ErrUnauthorized
	}
	if !p.IsActive {
		return errs.ErrAccountInactive
	}
	return nil
}

// RequireAdmin rejects principals that are not active admins
func (p *Principal) RequireAdmin() error {
	if err := p.RequireActive(); err != nil {
		return err
	}
	if !p.Role.IsAdmin() {
		return errs.ErrAdminRequired
	}
	return nil
}
