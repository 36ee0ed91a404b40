// Package unitofwork runs each ledger operation as one unit of work and retries
// units that lost a race to a concurrent writer.
package unitofwork

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
)

// RetryConfig bounds how often a conflicting unit is re-run
type RetryConfig struct {
	MaxAttempts  int
	BaseInterval coreport.Duration
	MaxInterval  coreport.Duration
	JitterFactor float64 // 0.0-1.0
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		BaseInterval: 20 * coreport.Millisecond,
		MaxInterval:  500 * coreport.Millisecond,
		JitterFactor: 0.2,
	}
}

// Func is the body of a unit of work. ctx carries the open transaction.
type Func func(ctx context.Context, uow persistence.UnitOfWork) error

// Runner executes Funcs inside a UnitOfWork
type Runner struct {
	uow          persistence.UnitOfWork
	config       RetryConfig
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewRunner creates a Runner. A zero MaxAttempts means a single attempt.
func NewRunner(
	uow persistence.UnitOfWork,
	config RetryConfig,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *Runner {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &Runner{
		uow:          uow,
		config:       config,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// UnitOfWork exposes the underlying unit of work for non-transactional reads
func (r *Runner) UnitOfWork() persistence.UnitOfWork {
	return r.uow
}

// Run executes fn atomically. Retryable conflicts re-run the whole unit up to
// MaxAttempts times; every other error is returned as is after rollback.
func (r *Runner) Run(ctx context.Context, operation string, fn Func) error {
	start := r.timeProvider.Now()
	err := r.run(ctx, operation, fn)

	outcome := coreport.OutcomeSuccess
	if err != nil {
		outcome = string(errs.KindOf(err))
	}
	r.metrics.ObserveOperation(operation, outcome, r.timeProvider.Since(start))
	return err
}

func (r *Runner) run(ctx context.Context, operation string, fn Func) error {
	var err error
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := r.backoff(attempt - 1)
			r.logger.Warn("Unit of work lost a concurrent race, retrying", map[string]any{
				"operation":    operation,
				"attempt":      attempt + 1,
				"max_attempts": r.config.MaxAttempts,
				"retry_after":  backoff.Std().String(),
				"error":        err.Error(),
			})
			r.metrics.IncRetry(operation)
			if sleepErr := r.timeProvider.Sleep(ctx, backoff); sleepErr != nil {
				return fmt.Errorf("%w: %s canceled while waiting to retry: %s", errs.ErrConcurrentModification, operation, sleepErr.Error())
			}
		}

		err = r.once(ctx, fn)
		if err == nil || !errs.IsRetryable(err) {
			return err
		}
	}

	r.logger.Error("Unit of work retries exhausted", map[string]any{
		"operation": operation,
		"attempts":  r.config.MaxAttempts,
		"error":     err.Error(),
	})
	return err
}

func (r *Runner) once(ctx context.Context, fn Func) (err error) {
	txCtx, err := r.uow.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = r.uow.Rollback(txCtx)
			panic(p)
		}
		if err != nil {
			if rbErr := r.uow.Rollback(txCtx); rbErr != nil {
				r.logger.Error("Failed to roll back unit of work", map[string]any{
					"error":       rbErr.Error(),
					"cause_error": err.Error(),
				})
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if err = fn(txCtx, r.uow); err != nil {
		return err
	}
	return r.uow.Commit(txCtx)
}

// backoff computes baseInterval * 2^attempt capped at MaxInterval, plus jitter
func (r *Runner) backoff(attempt int) coreport.Duration {
	backoff := r.config.BaseInterval * (1 << uint(attempt))
	if r.config.MaxInterval > 0 && backoff > r.config.MaxInterval {
		backoff = r.config.MaxInterval
	}
	if r.config.JitterFactor > 0 {
		backoff += coreport.Duration(float64(backoff) * r.config.JitterFactor * rand.Float64())
	}
	return backoff
}
