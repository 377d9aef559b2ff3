package media

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
)

// defaultCacheTTL applies when no TTL is configured. Product images
// change rarely; a stale day is acceptable.
const defaultCacheTTL = 24 * time.Hour

// MediaDownloader fetches a binary attachment from the external service
type MediaDownloader interface {
	DownloadMedia(ctx context.Context, fileToken string) ([]byte, string, error)
}

// Image is one resolved proxy response
type Image struct {
	Body        []byte
	ContentType string
}

// MediaService resolves external file tokens into image bytes, caching
// responses so repeated catalog views do not hammer the media endpoint.
type MediaService struct {
	downloader MediaDownloader
	cache      cache.ImageCache
	ttl        time.Duration
	logger     *zap.Logger
}

// NewMediaService creates a new MediaService. A non-positive ttl falls
// back to the default.
func NewMediaService(downloader MediaDownloader, imageCache cache.ImageCache, ttl time.Duration, logger *zap.Logger) *MediaService {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &MediaService{downloader: downloader, cache: imageCache, ttl: ttl, logger: logger}
}

// CacheControl returns the cache directive matching the configured TTL
func (s *MediaService) CacheControl() string {
	return fmt.Sprintf("public, max-age=%d", int(s.ttl.Seconds()))
}

// Resolve returns the image for a file token. The cache key is the full
// proxy request URL so any change to the query shape invalidates
// naturally. Cache failures are logged and degrade to a direct fetch;
// they never fail the request.
func (s *MediaService) Resolve(ctx context.Context, cacheKey, fileToken string) (*Image, error) {
	if fileToken == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "file_token is required")
	}

	if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
		s.logger.Warn("image cache read failed", zap.Error(err))
	} else if cached != nil {
		return &Image{Body: cached.Body, ContentType: cached.ContentType}, nil
	}

	body, contentType, err := s.downloader.DownloadMedia(ctx, fileToken)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, &cache.CachedImage{Body: body, ContentType: contentType}, s.ttl); err != nil {
		s.logger.Warn("image cache write failed", zap.Error(err))
	}

	return &Image{Body: body, ContentType: contentType}, nil
}
