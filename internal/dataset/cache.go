package dataset

import (
	"context"
	"sync"
)

// Cache memoizes loads by input content. Each input name holds at most one
// entry; loading a name with different bytes replaces it. Failed loads are
// never cached.
//
// The cache is purely an optimization: a hit returns the same *Dataset a
// fresh load of identical bytes would produce.
type Cache struct {
	source Source

	mu      sync.Mutex
	entries map[string]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	key     string
	dataset *Dataset
}

// NewCache wraps a source with content-keyed memoization.
func NewCache(source Source) *Cache {
	return &Cache{
		source:  source,
		entries: make(map[string]cacheEntry),
	}
}

// Load returns the cached dataset for identical input, or loads and stores
// it.
func (c *Cache) Load(ctx context.Context, in Input) (*Dataset, error) {
	key := cacheKey(in)

	c.mu.Lock()
	if entry, ok := c.entries[in.Name]; ok && entry.key == key {
		c.hits++
		c.mu.Unlock()
		return entry.dataset, nil
	}
	c.misses++
	c.mu.Unlock()

	ds, err := c.source.Load(ctx, in)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[in.Name] = cacheEntry{key: key, dataset: ds}
	c.mu.Unlock()

	return ds, nil
}

// Invalidate drops the entry for an input name.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func cacheKey(in Input) string {
	return string(in.Format) + "|" + in.Sheet + "|" + HashBytes(in.Data)
}
