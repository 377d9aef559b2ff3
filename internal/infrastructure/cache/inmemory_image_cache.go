package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryImageCache implements ImageCache with a process-local map.
// Suitable for single-instance deployments and tests.
type InMemoryImageCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	img       CachedImage
	expiresAt time.Time
}

// NewInMemoryImageCache creates a new in-memory image cache
func NewInMemoryImageCache() *InMemoryImageCache {
	return &InMemoryImageCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached image for the key, or nil on a miss
func (c *InMemoryImageCache) Get(_ context.Context, key string) (*CachedImage, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}

	img := entry.img
	return &img, nil
}

// Set stores an image under the key with the given TTL
func (c *InMemoryImageCache) Set(_ context.Context, key string, img *CachedImage, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		img:       *img,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Len returns the number of live entries (for tests/monitoring)
func (c *InMemoryImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryImageCache implements ImageCache
var _ ImageCache = (*InMemoryImageCache)(nil)
