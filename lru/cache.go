// Package lru provides a bounded, goroutine-safe implementation of
// typeahead.ResultCache backed by github.com/hashicorp/golang-lru.
package lru

import (
	"fmt"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/typeahead"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the default number of entries kept before the least
// recently used entry is evicted.
const DefaultSize = 4096

// Ensure Cache implements typeahead.ResultCache at compile time.
var _ typeahead.ResultCache = (*Cache)(nil)

// Cache memoizes remote responses. Entries never expire unless a TTL is
// configured; capacity eviction only bounds memory for very long sessions.
type Cache struct {
	items *lru.Cache[uint64, item]
	ttl   time.Duration
	now   func() time.Time
}

// item keeps the full key next to the entry so that a hash collision reads
// as a miss instead of returning another query's records.
type item struct {
	key   string
	entry typeahead.CacheEntry
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL expires entries older than d. Zero, the default, keeps entries
// for the lifetime of the cache.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithNow overrides the clock used for FetchedAt and TTL checks.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache creates a cache holding at most size entries.
// A size of zero or less uses DefaultSize.
func NewCache(size int, opts ...Option) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	items, err := lru.New[uint64, item](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	c := &Cache{
		items: items,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the entry stored under key. The returned records are shared
// with the cache and must be treated as read-only.
func (c *Cache) Get(key string) (typeahead.CacheEntry, bool) {
	h := xxhash.Sum64String(key)
	it, ok := c.items.Get(h)
	if !ok || it.key != key {
		return typeahead.CacheEntry{}, false
	}
	if c.ttl > 0 && c.now().Sub(it.entry.FetchedAt) > c.ttl {
		c.items.Remove(h)
		return typeahead.CacheEntry{}, false
	}
	return it.entry, true
}

// Put stores a copy of entry under key, replacing any previous entry.
// A zero FetchedAt is set to the current time.
func (c *Cache) Put(key string, entry typeahead.CacheEntry) {
	entry.Records = slices.Clone(entry.Records)
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = c.now()
	}
	c.items.Add(xxhash.Sum64String(key), item{key: key, entry: entry})
}

// Len returns the number of entries currently held, including expired
// entries that have not been read since they expired.
func (c *Cache) Len() int {
	return c.items.Len()
}
