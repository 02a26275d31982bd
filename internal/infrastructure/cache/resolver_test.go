package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hms/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, *InMemoryLabelCache) {
	cache := NewInMemoryLabelCache()
	t.Cleanup(func() { cache.Close() })
	return NewResolver(cache, nil), cache
}

func TestResolver_LoadsOnMissAndCaches(t *testing.T) {
	resolver, cache := newTestResolver(t)

	id := uuid.New()
	calls := 0
	resolver.RegisterLoader("bed_type", func(ctx context.Context, loadID uuid.UUID) (string, error) {
		calls++
		assert.Equal(t, id, loadID)
		return "Deluxe", nil
	})

	ctx := context.Background()

	assert.Equal(t, "Deluxe", resolver.Label(ctx, "bed_type", id))
	assert.Equal(t, "Deluxe", resolver.Label(ctx, "bed_type", id))
	assert.Equal(t, 1, calls, "second lookup should be served from cache")

	label, found, err := cache.Get(ctx, "bed_type", id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Deluxe", label)
}

func TestResolver_UnknownKind(t *testing.T) {
	resolver, _ := newTestResolver(t)

	assert.Empty(t, resolver.Label(context.Background(), "ward", uuid.New()))
}

func TestResolver_LoaderError(t *testing.T) {
	resolver, cache := newTestResolver(t)

	resolver.RegisterLoader("bed_type", func(ctx context.Context, id uuid.UUID) (string, error) {
		return "", errors.New("db down")
	})

	assert.Empty(t, resolver.Label(context.Background(), "bed_type", uuid.New()))
	assert.Equal(t, 0, cache.Count(), "failed lookups must not be cached")
}

func TestResolver_Invalidate(t *testing.T) {
	resolver, _ := newTestResolver(t)

	id := uuid.New()
	name := "Deluxe"
	resolver.RegisterLoader("bed_type", func(ctx context.Context, loadID uuid.UUID) (string, error) {
		return name, nil
	})

	ctx := context.Background()
	assert.Equal(t, "Deluxe", resolver.Label(ctx, "bed_type", id))

	name = "Premium"
	require.NoError(t, resolver.Invalidate(ctx, "bed_type", id))
	assert.Equal(t, "Premium", resolver.Label(ctx, "bed_type", id))
}

func TestLabelCacheFactory_InMemoryWhenRedisDisabled(t *testing.T) {
	factory := NewLabelCacheFactory(config.RedisConfig{Enabled: false})

	cache, err := factory.CreateCache()
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.(*InMemoryLabelCache)
	assert.True(t, ok)
}
