package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/time"
)

var retryEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func testRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    4,
		RetryInterval: 100 * time.Millisecond,
		MaxInterval:   time.Second,
	}
}

func TestRetryOnTransientErrorRecovers(t *testing.T) {
	clock := timeprovider.NewFixedTimeProvider(retryEpoch)
	calls := 0

	err := RetryOnTransientError(context.Background(), testRetryConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, NewErrorMapper(), clock, logger.NewNoopLogger())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 300*time.Millisecond, clock.Now().Sub(retryEpoch), "100ms then 200ms of backoff")
}

func TestRetryOnTransientErrorStopsOnPermanentError(t *testing.T) {
	clock := timeprovider.NewFixedTimeProvider(retryEpoch)
	calls := 0
	permanent := errors.New("password authentication failed")

	err := RetryOnTransientError(context.Background(), testRetryConfig(), func(ctx context.Context) error {
		calls++
		return permanent
	}, NewErrorMapper(), clock, logger.NewNoopLogger())

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryOnTransientErrorGivesUp(t *testing.T) {
	clock := timeprovider.NewFixedTimeProvider(retryEpoch)
	calls := 0

	err := RetryOnTransientError(context.Background(), testRetryConfig(), func(ctx context.Context) error {
		calls++
		return errors.New("server closed the connection unexpectedly")
	}, NewErrorMapper(), clock, logger.NewNoopLogger())

	require.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestRetryOnTransientErrorHonoursContext(t *testing.T) {
	clock := timeprovider.NewFixedTimeProvider(retryEpoch)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryOnTransientError(ctx, testRetryConfig(), func(ctx context.Context) error {
		return errors.New("connection reset by peer")
	}, NewErrorMapper(), clock, logger.NewNoopLogger())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	config := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: 500 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, calculateBackoffWithJitter(0, config))
	assert.Equal(t, 400*time.Millisecond, calculateBackoffWithJitter(2, config))
	assert.Equal(t, 500*time.Millisecond, calculateBackoffWithJitter(5, config))

	config.JitterFactor = 0.5
	for attempt := range 4 {
		got := calculateBackoffWithJitter(attempt, config)
		base := min(config.RetryInterval*(1<<attempt), config.MaxInterval)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/2)
	}
}
