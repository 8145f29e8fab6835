package signals

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/metrics"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheKeyPrefix = "search_cache:"

// CacheStore is the subset of the Redis client used by the search cache
type CacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// searchCache stores successful search responses as JSON. Redis failures
// are logged and treated as misses.
type searchCache struct {
	store    CacheStore
	ttl      time.Duration
	provider string
}

func (c searchCache) key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return cacheKeyPrefix + c.provider + ":" + hex.EncodeToString(sum[:16])
}

func (c searchCache) get(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.store.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Search cache read failed")
		}
		metrics.ExternalCacheCount.WithLabelValues(c.provider, "miss").Inc()
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable search cache entry")
		metrics.ExternalCacheCount.WithLabelValues(c.provider, "miss").Inc()
		return false
	}

	metrics.ExternalCacheCount.WithLabelValues(c.provider, "hit").Inc()
	return true
}

func (c searchCache) put(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode search cache entry")
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Search cache write failed")
	}
}

// CachedWebSearcher caches a WebSearcher's results in Redis
type CachedWebSearcher struct {
	next  WebSearcher
	cache searchCache
}

func NewCachedWebSearcher(next WebSearcher, store CacheStore, ttl time.Duration) *CachedWebSearcher {
	return &CachedWebSearcher{
		next:  next,
		cache: searchCache{store: store, ttl: ttl, provider: providerName(next, "web")},
	}
}

func (c *CachedWebSearcher) Name() string { return c.cache.provider }

func (c *CachedWebSearcher) Search(ctx context.Context, query string) ([]models.WebResult, error) {
	key := c.cache.key("web", query)

	var cached []models.WebResult
	if c.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	results, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.put(ctx, key, results)
	return results, nil
}

// CachedVideoSearcher caches a VideoSearcher's results in Redis
type CachedVideoSearcher struct {
	next  VideoSearcher
	cache searchCache
}

func NewCachedVideoSearcher(next VideoSearcher, store CacheStore, ttl time.Duration) *CachedVideoSearcher {
	return &CachedVideoSearcher{
		next:  next,
		cache: searchCache{store: store, ttl: ttl, provider: providerName(next, "video")},
	}
}

func (c *CachedVideoSearcher) Name() string { return c.cache.provider }

func (c *CachedVideoSearcher) SearchVideos(ctx context.Context, query string, maxResults int) ([]models.VideoResult, error) {
	key := c.cache.key("video", query, strconv.Itoa(maxResults))

	var cached []models.VideoResult
	if c.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	results, err := c.next.SearchVideos(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	c.cache.put(ctx, key, results)
	return results, nil
}
