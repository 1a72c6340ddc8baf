package search

import (
	"context"

	"github.com/fwojciec/typeahead"
)

// Engine resolves a single query against the local index and the remote
// resolvers of one search kind.
type Engine struct {
	index    typeahead.Index
	primary  *RemoteResolver
	fallback *RemoteResolver
	cap      int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCap sets the maximum number of records returned per query.
// Defaults to typeahead.DefaultCap if not specified.
func WithCap(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.cap = n
		}
	}
}

// WithPrimary sets the resolver consulted first when local results do not
// fill the cap.
func WithPrimary(r *RemoteResolver) EngineOption {
	return func(e *Engine) {
		e.primary = r
	}
}

// WithFallback sets the resolver consulted when the primary resolver is
// unauthenticated, fails or finds nothing.
func WithFallback(r *RemoteResolver) EngineOption {
	return func(e *Engine) {
		e.fallback = r
	}
}

// NewEngine returns an Engine searching index first.
func NewEngine(index typeahead.Index, opts ...EngineOption) *Engine {
	e := &Engine{
		index: index,
		cap:   typeahead.DefaultCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cap returns the maximum number of records returned per query.
func (e *Engine) Cap() int {
	return e.cap
}

// ResolveLocalOnly returns local matches for query without any I/O.
// It is meant for the instant first paint of a keystroke.
func (e *Engine) ResolveLocalOnly(query string) []typeahead.Record {
	if typeahead.IsBlank(query) {
		return nil
	}
	return typeahead.Merge(e.index.Search(query), nil, e.cap)
}

// Resolve runs the full cascade for query and returns the merged records.
// It never fails: every source that errors contributes no records.
func (e *Engine) Resolve(ctx context.Context, query string) []typeahead.Record {
	local := e.ResolveLocalOnly(query)
	if typeahead.IsBlank(query) || !e.needsRemote(local) {
		return local
	}
	remote := e.resolveRemote(ctx, query, nil)
	return typeahead.Merge(local, remote, e.cap)
}

// needsRemote reports whether remote sources should be consulted given the
// local results already found.
func (e *Engine) needsRemote(local []typeahead.Record) bool {
	if e.primary == nil && e.fallback == nil {
		return false
	}
	return len(local) < e.cap
}

// resolveRemote runs primary then, if needed, fallback. onState, if set,
// is called when each remote step begins.
func (e *Engine) resolveRemote(ctx context.Context, query string, onState func(State)) []typeahead.Record {
	notify := func(s State) {
		if onState != nil {
			onState(s)
		}
	}

	if e.primary != nil {
		notify(StateRemotePrimaryPending)
		records, err := e.primary.Resolve(ctx, query)
		if err == nil && len(records) > 0 {
			return records
		}
	}

	if e.fallback == nil || ctx.Err() != nil {
		return nil
	}
	notify(StateRemoteFallbackPending)
	records, _ := e.fallback.Resolve(ctx, query)
	return records
}
