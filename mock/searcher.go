package mock

import (
	"context"

	"github.com/fwojciec/typeahead"
)

var _ typeahead.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of typeahead.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) ([]typeahead.Record, error)
}

func (s *Searcher) Search(ctx context.Context, query string) ([]typeahead.Record, error) {
	return s.SearchFn(ctx, query)
}
