package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/typeahead"
)

// Ensure LoggingSearcher implements typeahead.Searcher.
var _ typeahead.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a remote Searcher with request logging.
type LoggingSearcher struct {
	next   typeahead.Searcher
	source string
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher. source names the
// backend in log lines.
func NewLoggingSearcher(next typeahead.Searcher, source string, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, source: source, logger: logger}
}

// Search delegates to the wrapped searcher and logs the request.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (records []typeahead.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Info("remote search",
			"source", s.source,
			"query", query,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}
