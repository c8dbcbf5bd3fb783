package listview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionCacheStoresEntry(t *testing.T) {
	cache := NewCollectionCache(10 * time.Millisecond)
	calls := 0
	fetch := func() ([]Item, error) {
		calls++
		return []Item{{"id": "p1"}}, nil
	}

	first, err := cache.GetOrFetch("products", fetch)
	require.NoError(t, err)
	second, err := cache.GetOrFetch("products", fetch)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Equal(t, first[0].ID(), second[0].ID())
	assert.Equal(t, 1, calls)
}

func TestCollectionCacheExpires(t *testing.T) {
	cache := NewCollectionCache(2 * time.Millisecond)
	calls := 0
	fetch := func() ([]Item, error) {
		calls++
		return nil, nil
	}

	_, err := cache.GetOrFetch("products", fetch)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrFetch("products", fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCollectionCacheInvalidateForcesRefetch(t *testing.T) {
	cache := NewCollectionCache(time.Minute)
	calls := 0
	fetch := func() ([]Item, error) {
		calls++
		return []Item{{"id": "p1"}}, nil
	}

	_, err := cache.GetOrFetch("products", fetch)
	require.NoError(t, err)
	cache.Invalidate("products")
	_, err = cache.GetOrFetch("products", fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCachedSourceReusesFetchUntilInvalidated(t *testing.T) {
	inner := &fakeSource{items: map[string][]Item{
		"products": {{"id": "p1"}},
	}}
	cache := NewCollectionCache(time.Minute)
	source := CachedSource{Inner: inner, Cache: cache}

	first, err := source.FetchCollection(context.Background(), "products")
	require.NoError(t, err)
	_, err = source.FetchCollection(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.fetchCount())
	assert.Equal(t, "p1", first[0].ID())

	cache.Invalidate("products")
	_, err = source.FetchCollection(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.fetchCount())
}

func TestCollectionCacheZeroTTLDisablesCaching(t *testing.T) {
	cache := NewCollectionCache(0)
	calls := 0
	fetch := func() ([]Item, error) {
		calls++
		return nil, nil
	}

	_, err := cache.GetOrFetch("products", fetch)
	require.NoError(t, err)
	_, err = cache.GetOrFetch("products", fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}
