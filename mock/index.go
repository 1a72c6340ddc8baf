package mock

import "github.com/fwojciec/typeahead"

var _ typeahead.Index = (*Index)(nil)

// Index is a mock implementation of typeahead.Index.
type Index struct {
	SearchFn func(query string) []typeahead.Record
}

func (i *Index) Search(query string) []typeahead.Record {
	return i.SearchFn(query)
}
