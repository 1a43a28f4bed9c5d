// Package pagecache provides short-lived caching of rendered page payloads.
// Stores abstract the backing medium so deployments can run on a local
// in-memory cache or share a Redis instance between replicas.
package pagecache

import (
	"context"
	"sync"
	"time"
)

// Store abstracts the storage used for cached page payloads.
type Store interface {
	// Get returns the cached payload for key. The second return value
	// reports whether a live (non-expired) entry was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores payload under key for the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes the entry for key if present.
	Delete(ctx context.Context, key string) error
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-process Store for single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the payload for key if it exists and has not expired.
// Expired entries are removed lazily.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; another goroutine may have replaced it.
		if current, ok := s.entries[key]; ok && time.Now().After(current.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return entry.payload, true, nil
}

// Set stores payload under key for the given TTL.
func (s *MemoryStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Nothing to cache with a non-positive TTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the entry for key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
