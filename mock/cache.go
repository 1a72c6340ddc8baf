package mock

import "github.com/fwojciec/typeahead"

var _ typeahead.ResultCache = (*ResultCache)(nil)

// ResultCache is a mock implementation of typeahead.ResultCache.
type ResultCache struct {
	GetFn func(key string) (typeahead.CacheEntry, bool)
	PutFn func(key string, entry typeahead.CacheEntry)
	LenFn func() int
}

func (c *ResultCache) Get(key string) (typeahead.CacheEntry, bool) {
	return c.GetFn(key)
}

func (c *ResultCache) Put(key string, entry typeahead.CacheEntry) {
	c.PutFn(key, entry)
}

func (c *ResultCache) Len() int {
	return c.LenFn()
}
