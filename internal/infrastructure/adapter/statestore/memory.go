package statestore

import (
	"context"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
	hasTTL    bool
}

type memoryStateStore struct {
	mu           sync.RWMutex
	entries      map[string]memEntry
	timeProvider coreport.TimeProvider
}

// NewMemoryStateStore keeps entries in process memory
func NewMemoryStateStore(timeProvider coreport.TimeProvider) coreport.StateStore {
	return &memoryStateStore{
		entries:      make(map[string]memEntry),
		timeProvider: timeProvider,
	}
}

func (s *memoryStateStore) expired(e memEntry) bool {
	return e.hasTTL && !s.timeProvider.Now().Before(e.expiresAt)
}

func (s *memoryStateStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.hasTTL = true
		entry.expiresAt = s.timeProvider.Now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *memoryStateStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if s.expired(entry) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}
	return entry.value, nil
}

func (s *memoryStateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
