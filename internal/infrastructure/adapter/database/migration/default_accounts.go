package migration

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// SeedAdmin describes the administrator created on first start
type SeedAdmin struct {
	Username string
	Email    string
}

// CreateDefaultAccounts seeds the administrator account when it is absent
func CreateDefaultAccounts(ctx context.Context, accounts usecase.AccountUseCase, admin SeedAdmin) error {
	if admin.Username == "" {
		return nil
	}
	return accounts.CreateDefaultAccounts(ctx, []usecase.DefaultAccount{
		{Username: admin.Username, Email: admin.Email, Role: entity.RoleAdmin},
	})
}
