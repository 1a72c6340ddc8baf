package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/typeahead"
)

// Ensure LoggingCache implements typeahead.ResultCache.
var _ typeahead.ResultCache = (*LoggingCache)(nil)

// LoggingCache wraps a ResultCache with debug logging of hits and misses.
type LoggingCache struct {
	next   typeahead.ResultCache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next typeahead.ResultCache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs whether the key was found.
func (c *LoggingCache) Get(key string) (typeahead.CacheEntry, bool) {
	entry, ok := c.next.Get(key)
	if ok {
		c.logger.Debug("cache hit",
			"key", key,
			"count", len(entry.Records),
			"age", time.Since(entry.FetchedAt),
		)
	} else {
		c.logger.Debug("cache miss", "key", key)
	}
	return entry, ok
}

// Put delegates to the wrapped cache and logs the stored entry.
func (c *LoggingCache) Put(key string, entry typeahead.CacheEntry) {
	c.next.Put(key, entry)
	c.logger.Debug("cache store",
		"key", key,
		"count", len(entry.Records),
		"size", c.next.Len(),
	)
}

// Len delegates to the wrapped cache.
func (c *LoggingCache) Len() int {
	return c.next.Len()
}
