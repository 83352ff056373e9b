package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	loads := 0
	readThroughCache := NewReadThroughCache[string, []string](
		nil,
		func(ctx context.Context) ([]string, error) {
			loads++
			return []string{"michael@mergington.edu"}, nil
		},
		true,
	)

	roster, err := readThroughCache.Get(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu"}, roster)

	// Every read goes straight to the loader
	roster, err = readThroughCache.Get(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu"}, roster)
	require.Equal(t, 2, loads)
}

func TestReadThroughCache_Get_WithValueInCache(t *testing.T) {
	manager := NewInMemory[string, []string](DefaultExpiration, DefaultCleanupInterval)
	manager.Set(context.Background(), "key", []string{"emma@mergington.edu"}, DefaultExpiration)

	readThroughCache := NewReadThroughCache[string, []string](
		manager,
		func(ctx context.Context) ([]string, error) {
			require.Fail(t, "loader should not run on a cache hit")
			return nil, nil
		},
		false,
	)

	roster, err := readThroughCache.Get(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"emma@mergington.edu"}, roster)
}

func TestReadThroughCache_Get_EmptyCache(t *testing.T) {
	manager := NewInMemory[string, []string](DefaultExpiration, DefaultCleanupInterval)

	loads := 0
	readThroughCache := NewReadThroughCache[string, []string](
		manager,
		func(ctx context.Context) ([]string, error) {
			loads++
			return []string{"sophia@mergington.edu"}, nil
		},
		false,
	)

	roster, err := readThroughCache.Get(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"sophia@mergington.edu"}, roster)
	require.Equal(t, 1, loads)

	// Miss populated the cache, so the second read skips the loader
	roster, err = readThroughCache.Get(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, []string{"sophia@mergington.edu"}, roster)
	require.Equal(t, 1, loads)
}

func TestReadThroughCache_Get_LoadError(t *testing.T) {
	manager := NewInMemory[string, []string](DefaultExpiration, DefaultCleanupInterval)

	readThroughCache := NewReadThroughCache[string, []string](
		manager,
		func(ctx context.Context) ([]string, error) {
			return nil, errors.New("failed to get data")
		},
		false,
	)

	_, err := readThroughCache.Get(context.Background(), "key", time.Minute)
	require.Error(t, err)

	// Nothing cached after a failed load
	_, ok := manager.Get(context.Background(), "key")
	require.False(t, ok)
}

func TestReadThroughCache_Flush(t *testing.T) {
	manager := NewInMemory[string, []string](DefaultExpiration, DefaultCleanupInterval)

	loads := 0
	readThroughCache := NewReadThroughCache[string, []string](
		manager,
		func(ctx context.Context) ([]string, error) {
			loads++
			return []string{"john@mergington.edu"}, nil
		},
		false,
	)

	_, err := readThroughCache.Get(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, loads)

	err = readThroughCache.Flush(context.Background())
	require.NoError(t, err)

	// Flush invalidated the entry, so the next read loads again
	_, err = readThroughCache.Get(context.Background(), "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, loads)
}

func TestReadThroughCache_Flush_WithCacheDisabled(t *testing.T) {
	readThroughCache := NewReadThroughCache[string, []string](
		nil,
		func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
		true,
	)

	require.NoError(t, readThroughCache.Flush(context.Background()))
}
