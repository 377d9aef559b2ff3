package cache

import (
	"context"
	"time"
)

// CachedImage is one stored media response: raw bytes plus the content
// type to replay on a hit.
type CachedImage struct {
	Body        []byte `json:"body"`
	ContentType string `json:"content_type"`
}

// ImageCache is the edge cache in front of the media proxy. Keys are full
// proxy request URLs. Get returns (nil, nil) on a miss; a duplicate
// concurrent Set for the same key is an idempotent overwrite.
type ImageCache interface {
	// Get returns the cached image for the key, or nil on a miss
	Get(ctx context.Context, key string) (*CachedImage, error)

	// Set stores an image under the key with the given TTL
	Set(ctx context.Context, key string, img *CachedImage, ttl time.Duration) error
}
