package typeahead

import "time"

// CacheEntry holds the records returned by a remote source for one
// normalized query. Entries are immutable once stored: a newer response
// replaces the entry wholesale.
type CacheEntry struct {
	Query     string    `json:"query"`
	Records   []Record  `json:"records"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// ResultCache memoizes remote responses by key. One cache is shared by all
// sessions of a search kind and must be safe for concurrent use.
type ResultCache interface {
	// Get returns the entry stored under key.
	Get(key string) (CacheEntry, bool)

	// Put stores entry under key, replacing any previous entry.
	Put(key string, entry CacheEntry)

	// Len returns the number of entries currently held.
	Len() int
}
