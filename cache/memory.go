package cache

import (
	"context"
	"sync"

	"github.com/canonkey/canonkey/digest"
)

// MemoryCache is an in-memory cache implementation.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[digest.Digest][]byte
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[digest.Digest][]byte)}
}

// Get retrieves a value from the cache. Returns (nil, false) on miss.
func (c *MemoryCache) Get(_ context.Context, key digest.Digest) ([]byte, bool) {
	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()
	return value, ok
}

// Set stores a value under the given digest.
func (c *MemoryCache) Set(_ context.Context, key digest.Digest, value []byte) error {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
	return nil
}

// Delete removes a value from the cache. Idempotent - no error on miss.
func (c *MemoryCache) Delete(_ context.Context, key digest.Digest) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Ensure MemoryCache implements Cache
var _ Cache = (*MemoryCache)(nil)
