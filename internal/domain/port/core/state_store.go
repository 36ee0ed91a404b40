package core

import (
	"context"
	"time"
)

// StateStore is an ephemeral key-value store used for caching.
// Get returns (nil, nil) when the key is absent or expired.
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
