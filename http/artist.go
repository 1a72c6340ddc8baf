package http

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/typeahead"
)

// DefaultArtistURL is the base URL of the primary artist search API.
const DefaultArtistURL = "https://api.spotify.com"

// Ensure ArtistSearcher implements typeahead.Searcher at compile time.
var _ typeahead.Searcher = (*ArtistSearcher)(nil)

// ArtistSearcher searches artists through a Web API that requires a bearer
// token. Without a token every search fails fast with EUNAUTHENTICATED and
// no request is sent.
type ArtistSearcher struct {
	baseURL string
	token   string
	opts    options
}

// NewArtistSearcher creates an ArtistSearcher for baseURL using token.
// An empty baseURL uses DefaultArtistURL.
func NewArtistSearcher(baseURL, token string, opts ...Option) *ArtistSearcher {
	if baseURL == "" {
		baseURL = DefaultArtistURL
	}
	return &ArtistSearcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		opts:    newOptions(opts),
	}
}

// HasCredential reports whether a token is configured.
func (s *ArtistSearcher) HasCredential() bool {
	return s.token != ""
}

type artistResponse struct {
	Artists struct {
		Items []struct {
			ID         string   `json:"id"`
			Name       string   `json:"name"`
			Popularity int      `json:"popularity"`
			Genres     []string `json:"genres"`
			Images     []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"items"`
	} `json:"artists"`
}

// Search returns artists matching query in the API's rank order.
func (s *ArtistSearcher) Search(ctx context.Context, query string) ([]typeahead.Record, error) {
	if !s.HasCredential() {
		return nil, typeahead.Errorf(typeahead.EUNAUTHENTICATED, "artist search requires an access token")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "artist")
	params.Set("limit", strconv.Itoa(s.opts.limit))
	if s.opts.country != "" {
		params.Set("market", s.opts.country)
	}
	endpoint, err := buildURL(s.baseURL, "/v1/search", params)
	if err != nil {
		return nil, err
	}

	var payload artistResponse
	if err := s.opts.getJSON(ctx, endpoint, s.token, &payload); err != nil {
		return nil, err
	}

	records := make([]typeahead.Record, 0, len(payload.Artists.Items))
	for _, item := range payload.Artists.Items {
		if item.ID == "" || item.Name == "" {
			continue
		}
		r := typeahead.Record{
			ID:          item.ID,
			DisplayName: item.Name,
			Rank:        len(records),
			Popularity:  float64(item.Popularity),
		}
		if len(item.Genres) > 0 {
			r.GroupKey = item.Genres[0]
		}
		if len(item.Images) > 0 {
			r.ImageURL = item.Images[0].URL
		}
		records = append(records, r)
	}
	return records, nil
}
