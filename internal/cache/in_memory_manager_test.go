package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInMemory(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemory[string, string](DefaultExpiration, DefaultCleanupInterval)
	})
}

type rosterSnapshot struct {
	Activity     string
	Participants []string
}

func TestInMemory_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemory[string, rosterSnapshot](DefaultExpiration, DefaultCleanupInterval)
	snap := rosterSnapshot{
		Activity:     "Chess Club",
		Participants: []string{"michael@mergington.edu", "daniel@mergington.edu"},
	}
	cache.Set(context.Background(), "activities:chess", snap, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "activities:chess")
	require.True(t, ok)
	require.Equal(t, snap, got)
}

func TestInMemory_GetExistingValue(t *testing.T) {
	cache := NewInMemory[string, string](DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "activity", "Chess Club", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "activity")
	require.True(t, ok)
	require.Equal(t, "Chess Club", got)
}

func TestInMemory_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemory[string, string](DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "activity")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemory[string, string](DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("activity", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "activity")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_Flush(t *testing.T) {
	cache := NewInMemory[string, string](DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "activity", "Chess Club", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "activity")
	require.True(t, ok)
	require.Equal(t, "Chess Club", got)

	err := cache.Flush(context.Background())
	require.NoError(t, err)

	got, ok = cache.Get(context.Background(), "activity")
	require.False(t, ok)
	require.Equal(t, "", got)
}
