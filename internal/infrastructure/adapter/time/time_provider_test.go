package time

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
)

func TestRealTimeProvider_SleepHonorsContext(t *testing.T) {
	provider := NewRealTimeProvider()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := provider.Sleep(ctx, core.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRealTimeProvider_SleepElapses(t *testing.T) {
	provider := NewRealTimeProvider()

	start := provider.Now()
	require.NoError(t, provider.Sleep(context.Background(), 5*core.Millisecond))
	assert.GreaterOrEqual(t, provider.Since(start), 5*core.Millisecond)
}

func TestFixedTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	provider := NewFixedTimeProvider(start)

	assert.Equal(t, start, provider.Now())

	require.NoError(t, provider.Sleep(context.Background(), 2*core.Second))
	assert.Equal(t, start.Add(2*time.Second), provider.Now())
	assert.Equal(t, 2*core.Second, provider.Since(start))

	provider.Advance(core.Day)
	assert.Equal(t, start.Add(24*time.Hour+2*time.Second), provider.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, provider.Sleep(ctx, core.Second))
}
