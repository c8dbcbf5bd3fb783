package listview

import (
	"context"
	"sync"
	"time"
)

// CollectionCache is an in-memory TTL cache for fetched collections so
// read-only consumers (CLI previews, report builders) can share fetches.
type CollectionCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedCollection
}

type cachedCollection struct {
	items   []Item
	expires time.Time
}

// NewCollectionCache builds a cache with the provided TTL.
func NewCollectionCache(ttl time.Duration) *CollectionCache {
	return &CollectionCache{
		ttl:     ttl,
		entries: make(map[string]cachedCollection),
	}
}

// GetOrFetch returns a cached collection or fetches/stores a new one.
func (c *CollectionCache) GetOrFetch(key string, fetch func() ([]Item, error)) ([]Item, error) {
	if items, ok := c.get(key); ok {
		return items, nil
	}
	items, err := fetch()
	if err != nil {
		return nil, err
	}
	c.set(key, items)
	return items, nil
}

// Invalidate drops a cached collection, typically after a mutation.
func (c *CollectionCache) Invalidate(key string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *CollectionCache) get(key string) ([]Item, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return nil, false
	}
	return entry.items, true
}

// CachedSource decorates a Source with a CollectionCache so repeated
// refreshes within the TTL reuse the last fetch.
type CachedSource struct {
	Inner Source
	Cache *CollectionCache
}

var _ Source = CachedSource{}

// FetchCollection implements Source through the cache.
func (s CachedSource) FetchCollection(ctx context.Context, resource string) ([]Item, error) {
	if s.Cache == nil {
		return s.Inner.FetchCollection(ctx, resource)
	}
	return s.Cache.GetOrFetch(resource, func() ([]Item, error) {
		return s.Inner.FetchCollection(ctx, resource)
	})
}

func (c *CollectionCache) set(key string, items []Item) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedCollection{
		items:   items,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}
