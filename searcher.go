package typeahead

import "context"

// Searcher queries a single remote search backend.
//
// Implementations return records in the backend's own rank order. A missing
// or rejected credential is reported with EUNAUTHENTICATED; every other
// failure may be returned as a plain error.
type Searcher interface {
	// Search runs one request for query against the backend.
	// The context controls timeout and cancellation.
	Search(ctx context.Context, query string) ([]Record, error)
}

// Index answers queries synchronously from an in-memory dataset.
type Index interface {
	// Search returns the best local matches for query, best first.
	// A query with no matches returns an empty result, never an error.
	Search(query string) []Record
}
