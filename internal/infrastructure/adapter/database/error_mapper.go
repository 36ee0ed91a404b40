package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a database error to a domain error. Context errors pass through unchanged.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", errs.ErrNotFound, operation)
	}

	switch m.classifier.Classify(err) {
	case repository.LockError:
		// Serialization failures surface at commit under SERIALIZABLE
		return fmt.Errorf("%w: %s: %s", errs.ErrConcurrentModification, operation, err.Error())
	case repository.DuplicateKeyError:
		return fmt.Errorf("%w: %s", errs.ErrDuplicateValue, operation)
	case repository.ConstraintError:
		return fmt.Errorf("%w: %s violates a constraint", errs.ErrInvalidInput, operation)
	case repository.TransientError, repository.ConnectionError:
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	}

	return fmt.Errorf("%w: %s: %s", errs.ErrInternal, operation, err.Error())
}

// IsTransient reports whether the failed operation may succeed when repeated
func (m *ErrorMapper) IsTransient(err error) bool {
	return m.classifier.IsConnectionError(err)
}
