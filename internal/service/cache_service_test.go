package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct{ err error }

func (f failingCache) Get(ctx context.Context, key string, dest interface{}) error { return f.err }
func (f failingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return f.err
}
func (f failingCache) DeleteByPattern(ctx context.Context, pattern string) error { return f.err }

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	store := newMemoryCache()
	svc := NewCacheService(store, nil, 0, nil, false)

	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, store.values)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	assert.NoError(t, nilSvc.Invalidate(context.Background(), "*"))
}

func TestCacheServiceRoundTrip(t *testing.T) {
	svc := NewCacheService(newMemoryCache(), NewMetricsService(), time.Minute, nil, true)

	require.NoError(t, svc.Set(context.Background(), "greeting", "hello", 0))
	var out string
	hit, err := svc.Get(context.Background(), "greeting", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "hello", out)

	hit, err = svc.Get(context.Background(), "absent", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	boom := errors.New("redis unavailable")
	svc := NewCacheService(failingCache{err: boom}, nil, time.Minute, nil, true)

	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	assert.False(t, hit)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Invalidate(context.Background(), "metrics:*"), boom)
}

func TestClassMetricsKeyBucketsByMinute(t *testing.T) {
	a := classMetricsKey("class-1", time.Date(2024, 9, 15, 12, 0, 5, 0, time.UTC))
	b := classMetricsKey("class-1", time.Date(2024, 9, 15, 12, 0, 55, 0, time.UTC))
	c := classMetricsKey("class-1", time.Date(2024, 9, 15, 12, 1, 0, 0, time.UTC))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "metrics:class:class-1:*", classMetricsPattern("class-1"))
}
