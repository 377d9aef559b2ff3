package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisImageCache implements ImageCache using Redis. Suitable for
// deployments where multiple instances should share the media cache.
type RedisImageCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisImageCache creates a new Redis-based image cache
func NewRedisImageCache(cfg RedisConfig) (*RedisImageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisImageCache{
		client:    client,
		keyPrefix: "media:image:",
	}, nil
}

// NewRedisImageCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisImageCacheWithClient(client *redis.Client, keyPrefix string) *RedisImageCache {
	if keyPrefix == "" {
		keyPrefix = "media:image:"
	}
	return &RedisImageCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached image for the key, or nil on a miss
func (c *RedisImageCache) Get(ctx context.Context, key string) (*CachedImage, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached image: %w", err)
	}

	var img CachedImage
	if err := json.Unmarshal(raw, &img); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it
		return nil, nil
	}
	return &img, nil
}

// Set stores an image under the key with the given TTL
func (c *RedisImageCache) Set(ctx context.Context, key string, img *CachedImage, ttl time.Duration) error {
	raw, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("failed to encode cached image: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached image: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisImageCache) Close() error {
	return c.client.Close()
}

// Ensure RedisImageCache implements ImageCache
var _ ImageCache = (*RedisImageCache)(nil)
