package search_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/typeahead"
	"github.com/fwojciec/typeahead/lru"
	"github.com/fwojciec/typeahead/mock"
	"github.com/fwojciec/typeahead/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *lru.Cache {
	t.Helper()
	c, err := lru.NewCache(16)
	require.NoError(t, err)
	return c
}

// countingSearcher returns records for every query and counts calls.
func countingSearcher(calls *atomic.Int32, records ...typeahead.Record) *mock.Searcher {
	return &mock.Searcher{
		SearchFn: func(ctx context.Context, query string) ([]typeahead.Record, error) {
			calls.Add(1)
			return records, nil
		},
	}
}

func TestRemoteResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("tags records with origin and rank", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		searcher := countingSearcher(&calls,
			typeahead.Record{ID: "889327", DisplayName: "Shakira"},
			typeahead.Record{ID: "1419227", DisplayName: "Shaggy"},
		)
		r := search.NewRemoteResolver(searcher, newCache(t), typeahead.OriginRemoteFallback)

		got, err := r.Resolve(context.Background(), "Sha")

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, typeahead.OriginRemoteFallback, got[0].Origin)
		assert.Equal(t, typeahead.OriginRemoteFallback, got[1].Origin)
		assert.Equal(t, 0, got[0].Rank)
		assert.Equal(t, 1, got[1].Rank)
		assert.Equal(t, typeahead.OriginRemoteFallback, r.Origin())
	})

	t.Run("cache hit performs no request", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		searcher := countingSearcher(&calls, typeahead.Record{ID: "1", DisplayName: "Shakira"})
		r := search.NewRemoteResolver(searcher, newCache(t), typeahead.OriginRemotePrimary)

		first, err := r.Resolve(context.Background(), "Shakira")
		require.NoError(t, err)
		second, err := r.Resolve(context.Background(), "  SHAKIRA ")
		require.NoError(t, err)

		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, first, second)
	})

	t.Run("diacritic variants share a cache entry", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		searcher := countingSearcher(&calls, typeahead.Record{ID: "1", DisplayName: "Bogotá"})
		r := search.NewRemoteResolver(searcher, newCache(t), typeahead.OriginRemotePrimary)

		_, err := r.Resolve(context.Background(), "Bogotá")
		require.NoError(t, err)
		_, err = r.Resolve(context.Background(), "bogota")
		require.NoError(t, err)

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stores entry under normalized query", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		var stored typeahead.CacheEntry
		var storedKey string
		cache := &mock.ResultCache{
			GetFn: func(key string) (typeahead.CacheEntry, bool) {
				return typeahead.CacheEntry{}, false
			},
			PutFn: func(key string, entry typeahead.CacheEntry) {
				storedKey = key
				stored = entry
			},
		}
		var calls atomic.Int32
		searcher := countingSearcher(&calls, typeahead.Record{ID: "1", DisplayName: "Medellín"})
		r := search.NewRemoteResolver(searcher, cache, typeahead.OriginRemotePrimary,
			search.WithClock(func() time.Time { return now }))

		_, err := r.Resolve(context.Background(), "  Medellín ")

		require.NoError(t, err)
		assert.Equal(t, "remote-primary:medellin", storedKey)
		assert.Equal(t, "medellin", stored.Query)
		assert.Equal(t, now, stored.FetchedAt)
		require.Len(t, stored.Records, 1)
		assert.Equal(t, typeahead.OriginRemotePrimary, stored.Records[0].Origin)
	})

	t.Run("blank query performs no request", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		r := search.NewRemoteResolver(countingSearcher(&calls), newCache(t), typeahead.OriginRemotePrimary)

		got, err := r.Resolve(context.Background(), "   ")

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Zero(t, calls.Load())
	})

	t.Run("missing credential fails before cache and network", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]typeahead.Record, error) {
				t.Fatal("searcher must not be called")
				return nil, nil
			},
		}
		cache := &mock.ResultCache{
			GetFn: func(key string) (typeahead.CacheEntry, bool) {
				t.Fatal("cache must not be consulted")
				return typeahead.CacheEntry{}, false
			},
		}
		r := search.NewRemoteResolver(searcher, cache, typeahead.OriginRemotePrimary,
			search.WithCredentialCheck(func() bool { return false }))

		got, err := r.Resolve(context.Background(), "Shakira")

		assert.Nil(t, got)
		assert.Equal(t, typeahead.EUNAUTHENTICATED, typeahead.ErrorCode(err))
	})

	t.Run("rejected credential is propagated", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]typeahead.Record, error) {
				return nil, typeahead.Errorf(typeahead.EUNAUTHENTICATED, "token expired")
			},
		}
		r := search.NewRemoteResolver(searcher, newCache(t), typeahead.OriginRemotePrimary)

		_, err := r.Resolve(context.Background(), "Shakira")

		assert.True(t, typeahead.IsUnauthenticated(err))
	})

	t.Run("backend failure reads as empty and is not cached", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]typeahead.Record, error) {
				calls.Add(1)
				return nil, errors.New("connection reset")
			},
		}
		cache := newCache(t)
		r := search.NewRemoteResolver(searcher, cache, typeahead.OriginRemotePrimary)

		got, err := r.Resolve(context.Background(), "Lima")
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = r.Resolve(context.Background(), "Lima")
		require.NoError(t, err)

		assert.Equal(t, int32(2), calls.Load())
		assert.Zero(t, cache.Len())
	})

	t.Run("empty answer is cached", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		r := search.NewRemoteResolver(countingSearcher(&calls), newCache(t), typeahead.OriginRemotePrimary)

		_, err := r.Resolve(context.Background(), "xyzzynotreal")
		require.NoError(t, err)
		got, err := r.Resolve(context.Background(), "xyzzynotreal")
		require.NoError(t, err)

		assert.Empty(t, got)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("origins sharing a cache do not mask each other", func(t *testing.T) {
		t.Parallel()

		cache := newCache(t)
		var primaryCalls, fallbackCalls atomic.Int32
		primary := search.NewRemoteResolver(countingSearcher(&primaryCalls), cache, typeahead.OriginRemotePrimary)
		fallback := search.NewRemoteResolver(
			countingSearcher(&fallbackCalls, typeahead.Record{ID: "889327", DisplayName: "Shakira"}),
			cache, typeahead.OriginRemoteFallback)

		_, err := primary.Resolve(context.Background(), "Shakira")
		require.NoError(t, err)
		got, err := fallback.Resolve(context.Background(), "Shakira")
		require.NoError(t, err)

		assert.Equal(t, int32(1), fallbackCalls.Load())
		require.Len(t, got, 1)
		assert.Equal(t, "889327", got[0].ID)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("cancelled context reads as empty", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]typeahead.Record, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		cache := newCache(t)
		r := search.NewRemoteResolver(searcher, cache, typeahead.OriginRemotePrimary)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got, err := r.Resolve(ctx, "Quito")

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, cache.Len())
	})

	t.Run("concurrent misses share one request", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		searcher := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string) ([]typeahead.Record, error) {
				calls.Add(1)
				<-release
				return []typeahead.Record{{ID: "1", DisplayName: "Caracas"}}, nil
			},
		}
		r := search.NewRemoteResolver(searcher, newCache(t), typeahead.OriginRemotePrimary)

		var wg sync.WaitGroup
		results := make([][]typeahead.Record, 5)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _ = r.Resolve(context.Background(), "Caracas")
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, got := range results {
			require.Len(t, got, 1)
			assert.Equal(t, "Caracas", got[0].DisplayName)
		}
	})
}
