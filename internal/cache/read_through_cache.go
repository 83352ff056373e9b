package cache

import (
	"context"
	"time"
)

type ReadThroughCache[K comparable, V any] struct {
	cache           Manager[K, V]
	load            func(ctx context.Context) (V, error)
	shouldSkipCache bool
}

func NewReadThroughCache[K comparable, V any](
	cache Manager[K, V],
	load func(ctx context.Context) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{
		cache:           cache,
		load:            load,
		shouldSkipCache: shouldSkipCache,
	}
}

func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.load(ctx)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.load(ctx)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, nil
}

func (r *ReadThroughCache[K, V]) Flush(ctx context.Context) error {
	if r.shouldSkipCache {
		return nil
	}

	return r.cache.Flush(ctx)
}
