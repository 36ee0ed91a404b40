package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// IngestInventory stores every non-blank line as an unclaimed item.
// Duplicates of existing values are skipped by the store; the returned count is
// the number of lines attempted, not the number inserted.
func (s *Service) IngestInventory(ctx context.Context, req usecase.IngestRequest) (int, error) {
	if req.ExpiresInDays < 0 {
		return 0, fmt.Errorf("%w: expiry must be a positive number of days", errs.ErrInvalidAmount)
	}

	values := make([]string, 0, len(req.Lines))
	for i, line := range req.Lines {
		v := strings.TrimSpace(line)
		if v == "" {
			continue
		}
		if len(v) > entity.MaxInventoryValueSize {
			return 0, fmt.Errorf("%w: line %d exceeds %d characters", errs.ErrInvalidInput, i+1, entity.MaxInventoryValueSize)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0, errs.ErrEmptyUpload
	}

	now := s.timeProvider.Now()
	var expiresAt *time.Time
	if req.ExpiresInDays > 0 {
		t := now.Add(time.Duration(req.ExpiresInDays) * 24 * time.Hour)
		expiresAt = &t
	}

	var inserted int64
	err := s.runner.Run(ctx, "ingest_inventory", func(ctx context.Context, uow persistence.UnitOfWork) error {
		inserted = 0
		inventory := uow.GetInventoryRepository(ctx)
		for start := 0; start < len(values); start += s.config.IngestBatchSize {
			end := min(start+s.config.IngestBatchSize, len(values))
			n, err := inventory.InsertBatch(ctx, values[start:end], expiresAt, now)
			if err != nil {
				return err
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to ingest inventory", map[string]any{
			"lines": len(values),
			"error": err.Error(),
		})
		return 0, err
	}

	s.logger.Info("Inventory ingested", map[string]any{
		"attempted":  len(values),
		"inserted":   inserted,
		"duplicates": int64(len(values)) - inserted,
	})
	return len(values), nil
}
