package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
)

// handleDatabaseError maps a driver error to the domain taxonomy.
// notFound is returned for gorm.ErrRecordNotFound.
func handleDatabaseError(logger coreport.Logger, classifier *ErrorClassifier, operation string, err error, notFound error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Debug(fmt.Sprintf("Record not found when %s", operation), fields)
		return notFound
	}

	logFields := map[string]any{"error": err.Error(), "operation": operation}
	for k, v := range fields {
		logFields[k] = v
	}

	switch classifier.Classify(err) {
	case DuplicateKeyError:
		logger.Warn("Duplicate value rejected", logFields)
		return fmt.Errorf("%w: %s", errs.ErrDuplicateValue, operation)
	case LockError:
		logger.Warn("Concurrent transaction conflict", logFields)
		return fmt.Errorf("%w: %s: %s", errs.ErrConcurrentModification, operation, err.Error())
	case ConstraintError:
		logger.Warn("Constraint violation", logFields)
		return fmt.Errorf("%w: %s violates a constraint", errs.ErrInvalidInput, operation)
	}

	logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}
