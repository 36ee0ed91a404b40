package account

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// CreateAccount creates an active account with a zero balance
func (u *AccountUseCase) CreateAccount(ctx context.Context, username, email string, role entity.Role) (*entity.Account, error) {
	account, err := entity.NewAccount(username, email, role, u.timeProvider)
	if err != nil {
		return nil, err
	}

	err = u.runner.Run(ctx, "create_account", func(ctx context.Context, uow persistence.UnitOfWork) error {
		return uow.GetAccountRepository(ctx).Create(ctx, account)
	})
	if err != nil {
		u.logger.Error("Failed to create account", map[string]any{
			"username": account.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Account created", map[string]any{
		"account_id": account.ID,
		"username":   account.Username,
		"role":       account.Role.String(),
	})
	return account, nil
}

// CreateDefaultAccounts creates the seeded accounts that do not exist yet
func (u *AccountUseCase) CreateDefaultAccounts(ctx context.Context, accounts []usecase.DefaultAccount) error {
	repo := u.runner.UnitOfWork().GetAccountRepository(ctx)

	for _, def := range accounts {
		_, err := repo.GetByUsername(ctx, def.Username)
		if err == nil {
			u.logger.Info("Default account already exists", map[string]any{
				"username": def.Username,
			})
			continue
		}
		if !errors.Is(err, errs.ErrAccountNotFound) {
			return err
		}

		if _, err := u.CreateAccount(ctx, def.Username, def.Email, def.Role); err != nil {
			if errors.Is(err, errs.ErrDuplicateValue) {
				continue
			}
			return err
		}
	}

	u.logger.Info("Default accounts created or verified", nil)
	return nil
}
