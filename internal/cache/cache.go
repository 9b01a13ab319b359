// Package cache provides a typed, thread-safe LRU cache with hit and miss
// counters.
//
//	c := cache.New[uint64, Mesh](256)
//	m := c.GetOrCreate(key, func() Mesh { return build() })
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// Cache is an LRU cache holding at most a fixed number of entries.
// A nil *Cache is valid and caches nothing.
//
// Cache is safe for concurrent use.
type Cache[K comparable, V any] struct {
	entries *lru.Cache
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// New creates a cache holding up to size entries. A size of 0 or less
// returns nil, which disables caching.
func New[K comparable, V any](size int) *Cache[K, V] {
	if size <= 0 {
		return nil
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil
	}
	return &Cache[K, V]{entries: entries}
}

// Get retrieves a value and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	v, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return v.(V), true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *Cache[K, V]) Set(key K, value V) {
	if c == nil {
		return
	}
	c.entries.Add(key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// Concurrent callers may both run create for the same key; the last one
// stored wins.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Clear removes all entries and resets the counters.
func (c *Cache[K, V]) Clear() {
	if c == nil {
		return
	}
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Stats returns the entry count and counters.
func (c *Cache[K, V]) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{Len: c.entries.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Stats contains cache statistics.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}
