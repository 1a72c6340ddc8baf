package search

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/typeahead"
	"golang.org/x/sync/singleflight"
)

// RemoteResolver wraps one remote search backend with a result cache.
//
// A lookup consults the cache first and only calls the backend on a miss.
// Backend failures are reported as an empty result, except a missing or
// rejected credential, which is returned as an EUNAUTHENTICATED error so the
// caller can escalate to another source.
type RemoteResolver struct {
	searcher      typeahead.Searcher
	cache         typeahead.ResultCache
	origin        typeahead.Origin
	hasCredential func() bool
	now           func() time.Time

	flights singleflight.Group
}

// ResolverOption configures a RemoteResolver.
type ResolverOption func(*RemoteResolver)

// WithCredentialCheck makes Resolve fail fast with EUNAUTHENTICATED,
// before any cache lookup or network call, whenever fn reports false.
func WithCredentialCheck(fn func() bool) ResolverOption {
	return func(r *RemoteResolver) {
		r.hasCredential = fn
	}
}

// WithClock overrides the clock used to stamp cache entries.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *RemoteResolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRemoteResolver returns a resolver tagging its records with origin.
// A nil cache disables caching.
func NewRemoteResolver(searcher typeahead.Searcher, cache typeahead.ResultCache, origin typeahead.Origin, opts ...ResolverOption) *RemoteResolver {
	r := &RemoteResolver{
		searcher: searcher,
		cache:    cache,
		origin:   origin,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Origin returns the origin assigned to records from this resolver.
func (r *RemoteResolver) Origin() typeahead.Origin {
	return r.origin
}

// Resolve returns the backend's records for query. Concurrent misses for
// the same normalized query share a single backend call. The returned slice
// may be shared with the cache and must not be modified.
func (r *RemoteResolver) Resolve(ctx context.Context, query string) ([]typeahead.Record, error) {
	normalized := typeahead.Normalize(query)
	if normalized == "" {
		return nil, nil
	}
	if r.hasCredential != nil && !r.hasCredential() {
		return nil, typeahead.Errorf(typeahead.EUNAUTHENTICATED, "%s: no credential configured", r.origin)
	}

	key := r.cacheKey(normalized)
	if r.cache != nil {
		if entry, ok := r.cache.Get(key); ok {
			return entry.Records, nil
		}
	}

	records, err := r.fetch(ctx, key, normalized, query)
	// A flight started by a cycle that was since cancelled fails with that
	// cycle's context error. Callers whose own context is still live issue
	// their own request instead of inheriting the cancellation.
	if isContextErr(err) && ctx.Err() == nil {
		records, err = r.fetch(ctx, key, normalized, query)
	}
	if err != nil {
		if typeahead.IsUnauthenticated(err) {
			return nil, err
		}
		return nil, nil
	}
	return records, nil
}

func (r *RemoteResolver) fetch(ctx context.Context, key, normalized, query string) ([]typeahead.Record, error) {
	v, err, _ := r.flights.Do(key, func() (any, error) {
		records, err := r.searcher.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		tagged := make([]typeahead.Record, len(records))
		for i, rec := range records {
			rec.Origin = r.origin
			rec.Rank = i
			tagged[i] = rec
		}
		if r.cache != nil {
			r.cache.Put(key, typeahead.CacheEntry{
				Query:     normalized,
				Records:   tagged,
				FetchedAt: r.now(),
			})
		}
		return tagged, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]typeahead.Record), nil
}

// cacheKey separates the primary and fallback key spaces so that an empty
// primary answer never masks the fallback's answer for the same query.
func (r *RemoteResolver) cacheKey(normalized string) string {
	return string(r.origin) + ":" + normalized
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
