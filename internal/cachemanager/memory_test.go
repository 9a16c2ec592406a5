package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type labelKey string

type labelRow struct {
	Value string
	Label string
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, labelRow]("labels", DefaultExpiration, DefaultCleanupInterval)
	row := labelRow{Value: "H", Label: "High"}
	cache.Set(context.Background(), "priority:H", row, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "priority:H")
	require.True(t, ok)
	require.Equal(t, row, got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, string]("labels", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "priority:H")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, string]("labels", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("suit:4", 4, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "suit:4")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, string]("labels", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "fruit:1", "苹果", 20*time.Millisecond)

	_, ok := cache.Get(context.Background(), "fruit:1")
	require.True(t, ok)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "fruit:1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh_WithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, string]("labels", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetWithRefresh(context.Background(), "fruit:1", time.Hour)
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestInMemoryCacheManager_GetWithRefresh_ExtendsLifetime(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, string]("labels", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "fruit:1", "苹果", 50*time.Millisecond)

	got, ok := cache.GetWithRefresh(context.Background(), "fruit:1", time.Hour)
	require.True(t, ok)
	require.Equal(t, "苹果", got)

	time.Sleep(100 * time.Millisecond)
	got, ok = cache.Get(context.Background(), "fruit:1")
	require.True(t, ok, "refresh should have extended the ttl")
	require.Equal(t, "苹果", got)
}

func TestInMemoryCacheManager_DeleteWithNoKeysDoesNothing(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, string]("labels", DefaultExpiration, DefaultCleanupInterval)

	err := cache.Delete(context.Background())
	require.NoError(t, err)
}

func TestInMemoryCacheManager_DeleteExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[labelKey, string]("labels", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "gender:M", "Male", DefaultExpiration)
	cache.Set(context.Background(), "gender:F", "Female", DefaultExpiration)

	err := cache.Delete(context.Background(), "gender:M", "gender:X")
	require.NoError(t, err)

	_, ok := cache.Get(context.Background(), "gender:M")
	require.False(t, ok)
	got, ok := cache.Get(context.Background(), "gender:F")
	require.True(t, ok)
	require.Equal(t, "Female", got)
}
