package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// MintKey creates a redeemable key. A custom value is used verbatim after
// normalization; otherwise a value is generated, retrying on collisions.
func (s *Service) MintKey(ctx context.Context, req usecase.MintKeyRequest) (*entity.RedeemableKey, error) {
	if err := validateMintRequest(req); err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	key := &entity.RedeemableKey{
		CreditAmount: req.CreditAmount,
		KeyType:      entity.KeyTypeRegular,
		Description:  strings.TrimSpace(req.Description),
		CreatedAt:    now,
	}
	if req.DurationDays > 0 {
		expiresAt := now.Add(time.Duration(req.DurationDays) * 24 * time.Hour)
		key.ExpiresAt = &expiresAt
	}

	if custom := strings.ToUpper(strings.TrimSpace(req.CustomValue)); custom != "" {
		value, err := entity.NormalizeKeyValue(custom)
		if err != nil {
			return nil, err
		}
		key.Value = value
		key.KeyType = entity.KeyTypeCustom
		if err := s.createKey(ctx, key); err != nil {
			return nil, err
		}
		return key, nil
	}

	var err error
	for attempt := 1; attempt <= keyGenerationAttempts; attempt++ {
		key.Value, err = entity.GenerateKeyValue(s.random)
		if err != nil {
			return nil, err
		}
		err = s.createKey(ctx, key)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, errs.ErrDuplicateValue) {
			return nil, err
		}
		s.logger.Warn("Generated key value collided, regenerating", map[string]any{
			"attempt": attempt,
		})
	}
	return nil, fmt.Errorf("%w: could not generate a unique key value after %d attempts", errs.ErrInternal, keyGenerationAttempts)
}

func (s *Service) createKey(ctx context.Context, key *entity.RedeemableKey) error {
	err := s.runner.Run(ctx, "mint_key", func(ctx context.Context, uow persistence.UnitOfWork) error {
		return uow.GetKeyRepository(ctx).Create(ctx, key)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Key minted", map[string]any{
		"key_id":        key.ID,
		"key_type":      string(key.KeyType),
		"credit_amount": key.CreditAmount,
		"expires_at":    key.ExpiresAt,
	})
	return nil
}

func validateMintRequest(req usecase.MintKeyRequest) error {
	if req.CreditAmount < 1 || req.CreditAmount > entity.MaxKeyCreditAmount {
		return fmt.Errorf("%w: credit amount must be between 1 and %d", errs.ErrInvalidAmount, entity.MaxKeyCreditAmount)
	}
	if req.DurationDays < 0 {
		return fmt.Errorf("%w: duration must be a positive number of days", errs.ErrInvalidAmount)
	}
	if len([]rune(strings.TrimSpace(req.Description))) > entity.MaxKeyDescriptionSize {
		return fmt.Errorf("%w: description exceeds %d characters", errs.ErrInvalidInput, entity.MaxKeyDescriptionSize)
	}
	return nil
}
