package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache loads missing values with fn and stores them.
// When disabled, every call goes straight to fn and nothing is stored.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache    CacheManager[K, V]
	fn       func(ctx context.Context, input I) (V, error)
	disabled bool
}

func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	disabled bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:    cache,
		fn:       fn,
		disabled: disabled,
	}
}

// Get returns the cached value for key, or loads it from input.
// Load errors are returned as-is and nothing is cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.disabled {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}
	return r.load(ctx, key, input, ttl)
}

// GetWithRefresh is Get, except that a hit extends the entry's lifetime.
func (r *ReadThroughCache[K, V, I]) GetWithRefresh(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.disabled {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.GetWithRefresh(ctx, key, ttl); ok {
		return value, nil
	}
	return r.load(ctx, key, input, ttl)
}

// Invalidate drops the given keys so the next read reloads them.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, keys ...K) error {
	if r.disabled {
		return nil
	}
	return r.cache.Delete(ctx, keys...)
}

func (r *ReadThroughCache[K, V, I]) load(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}
