package signals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCacheStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	readErr error
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCacheStore) Get(_ context.Context, key string) *redis.StringCmd {
	if f.readErr != nil {
		return redis.NewStringResult("", f.readErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCacheStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type countingWebSearcher struct {
	calls   int
	results []models.WebResult
	err     error
}

func (c *countingWebSearcher) Name() string { return "google" }

func (c *countingWebSearcher) Search(context.Context, string) ([]models.WebResult, error) {
	c.calls++
	return c.results, c.err
}

func TestCachedWebSearcher_HitAfterMiss(t *testing.T) {
	store := newFakeCacheStore()
	next := &countingWebSearcher{results: []models.WebResult{{Title: "Page", URL: "https://example.com"}}}
	cached := NewCachedWebSearcher(next, store, time.Hour)

	first, err := cached.Search(context.Background(), `"phrase"`)
	require.NoError(t, err)
	second, err := cached.Search(context.Background(), `"phrase"`)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "google", cached.Name())

	require.Len(t, store.ttls, 1)
	for key, ttl := range store.ttls {
		assert.Contains(t, key, cacheKeyPrefix+"google:")
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestCachedWebSearcher_ErrorsAreNotCached(t *testing.T) {
	store := newFakeCacheStore()
	next := &countingWebSearcher{err: models.ErrExternalSignalUnavailable}
	cached := NewCachedWebSearcher(next, store, time.Hour)

	_, err := cached.Search(context.Background(), "q")
	assert.ErrorIs(t, err, models.ErrExternalSignalUnavailable)
	_, err = cached.Search(context.Background(), "q")
	assert.Error(t, err)

	assert.Equal(t, 2, next.calls)
	assert.Empty(t, store.data)
}

func TestCachedWebSearcher_RedisFailureFallsThrough(t *testing.T) {
	store := newFakeCacheStore()
	store.readErr = errors.New("connection refused")
	next := &countingWebSearcher{results: []models.WebResult{{URL: "https://example.com"}}}

	results, err := NewCachedWebSearcher(next, store, time.Hour).Search(context.Background(), "q")

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, next.calls)
}

func TestCachedVideoSearcher_KeyIncludesLimit(t *testing.T) {
	store := newFakeCacheStore()
	next := &fakeVideoSearcher{videos: []models.VideoResult{{Title: "Midnight Drive"}}}
	cached := NewCachedVideoSearcher(next, store, time.Minute)

	_, err := cached.SearchVideos(context.Background(), "Midnight Drive", 5)
	require.NoError(t, err)
	_, err = cached.SearchVideos(context.Background(), "Midnight Drive", 3)
	require.NoError(t, err)

	assert.Len(t, store.data, 2)
	assert.Equal(t, "video", cached.Name())

	next.videos = nil
	results, err := cached.SearchVideos(context.Background(), "Midnight Drive", 5)
	require.NoError(t, err)
	assert.Equal(t, []models.VideoResult{{Title: "Midnight Drive"}}, results)
}
