package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/typeahead"
	typeaheadhttp "github.com/fwojciec/typeahead/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtistCatalogSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("maps results without credentials", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Shakira", r.URL.Query().Get("term"))
			assert.Equal(t, "musicArtist", r.URL.Query().Get("entity"))
			assert.Equal(t, "MX", r.URL.Query().Get("country"))
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"resultCount":2,"results":[
				{"artistId":889327,"artistName":"Shakira","primaryGenreName":"Latin"},
				{"artistId":0,"artistName":"no id"}
			]}`))
		}))
		defer server.Close()

		searcher := typeaheadhttp.NewArtistCatalogSearcher(server.URL, typeaheadhttp.WithCountry("MX"))

		records, err := searcher.Search(context.Background(), "Shakira")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "889327", records[0].ID)
		assert.Equal(t, "Shakira", records[0].DisplayName)
		assert.Equal(t, "Latin", records[0].GroupKey)
		assert.Equal(t, 0, records[0].Rank)
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		searcher := typeaheadhttp.NewArtistCatalogSearcher(server.URL)

		_, err := searcher.Search(context.Background(), "Shakira")
		require.Error(t, err)
		assert.Equal(t, typeahead.EUNAVAILABLE, typeahead.ErrorCode(err))
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		searcher := typeaheadhttp.NewArtistCatalogSearcher("http://non-existent-host.invalid")

		_, err := searcher.Search(context.Background(), "Shakira")
		require.Error(t, err)
	})
}
