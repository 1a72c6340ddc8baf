package http

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/typeahead"
)

// DefaultArtistCatalogURL is the base URL of the fallback artist catalog API.
const DefaultArtistCatalogURL = "https://itunes.apple.com"

// Ensure ArtistCatalogSearcher implements typeahead.Searcher at compile time.
var _ typeahead.Searcher = (*ArtistCatalogSearcher)(nil)

// ArtistCatalogSearcher searches a public music catalog that needs no
// credential. Its ranking is coarser than the primary API's, so it serves
// as the fallback source.
type ArtistCatalogSearcher struct {
	baseURL string
	opts    options
}

// NewArtistCatalogSearcher creates an ArtistCatalogSearcher for baseURL.
// An empty baseURL uses DefaultArtistCatalogURL.
func NewArtistCatalogSearcher(baseURL string, opts ...Option) *ArtistCatalogSearcher {
	if baseURL == "" {
		baseURL = DefaultArtistCatalogURL
	}
	return &ArtistCatalogSearcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    newOptions(opts),
	}
}

type catalogResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		ArtistID         int64  `json:"artistId"`
		ArtistName       string `json:"artistName"`
		PrimaryGenreName string `json:"primaryGenreName"`
	} `json:"results"`
}

// Search returns artists matching query in catalog order.
func (s *ArtistCatalogSearcher) Search(ctx context.Context, query string) ([]typeahead.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("term", query)
	params.Set("entity", "musicArtist")
	params.Set("attribute", "artistTerm")
	params.Set("limit", strconv.Itoa(s.opts.limit))
	if s.opts.country != "" {
		params.Set("country", s.opts.country)
	}
	endpoint, err := buildURL(s.baseURL, "/search", params)
	if err != nil {
		return nil, err
	}

	var payload catalogResponse
	if err := s.opts.getJSON(ctx, endpoint, "", &payload); err != nil {
		return nil, err
	}

	records := make([]typeahead.Record, 0, len(payload.Results))
	for _, item := range payload.Results {
		if item.ArtistID == 0 || item.ArtistName == "" {
			continue
		}
		records = append(records, typeahead.Record{
			ID:          strconv.FormatInt(item.ArtistID, 10),
			DisplayName: item.ArtistName,
			GroupKey:    item.PrimaryGenreName,
			Rank:        len(records),
		})
	}
	return records, nil
}
