package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/typeahead"
)

// Ensure LoggingIndex implements typeahead.Index.
var _ typeahead.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with debug logging.
type LoggingIndex struct {
	next   typeahead.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next typeahead.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// Search delegates to the wrapped index and logs the lookup.
func (i *LoggingIndex) Search(query string) []typeahead.Record {
	begin := time.Now()
	records := i.next.Search(query)
	i.logger.Debug("local search",
		"query", query,
		"count", len(records),
		"duration", time.Since(begin),
	)
	return records
}
