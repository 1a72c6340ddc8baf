package http

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/typeahead"
	"golang.org/x/time/rate"
)

// DefaultGeocoderURL is the base URL of the geocoding API.
const DefaultGeocoderURL = "https://nominatim.openstreetmap.org"

// DefaultGeocoderRate is the request rate allowed by the public geocoding
// service's usage policy.
const DefaultGeocoderRate = 1.0

// Ensure Geocoder implements typeahead.Searcher at compile time.
var _ typeahead.Searcher = (*Geocoder)(nil)

// Geocoder resolves free-text place names to cities.
// Requests are throttled to DefaultGeocoderRate unless WithRateLimiter
// supplies another limiter.
type Geocoder struct {
	baseURL string
	opts    options
}

// NewGeocoder creates a Geocoder for baseURL.
// An empty baseURL uses DefaultGeocoderURL.
func NewGeocoder(baseURL string, opts ...Option) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocoderURL
	}
	o := newOptions(opts)
	if o.limiter == nil {
		o.limiter = rate.NewLimiter(rate.Limit(DefaultGeocoderRate), 1)
	}
	return &Geocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    o,
	}
}

type place struct {
	PlaceID     int64   `json:"place_id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
	Address     struct {
		Country string `json:"country"`
	} `json:"address"`
}

// Search returns places matching query in the service's rank order.
func (g *Geocoder) Search(ctx context.Context, query string) ([]typeahead.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("featureType", "city")
	params.Set("limit", strconv.Itoa(g.opts.limit))
	if g.opts.country != "" {
		params.Set("countrycodes", strings.ToLower(g.opts.country))
	}
	endpoint, err := buildURL(g.baseURL, "/search", params)
	if err != nil {
		return nil, err
	}

	var places []place
	if err := g.opts.getJSON(ctx, endpoint, "", &places); err != nil {
		return nil, err
	}

	records := make([]typeahead.Record, 0, len(places))
	for _, p := range places {
		name := p.Name
		if name == "" {
			name, _, _ = strings.Cut(p.DisplayName, ",")
			name = strings.TrimSpace(name)
		}
		if p.PlaceID == 0 || name == "" {
			continue
		}
		records = append(records, typeahead.Record{
			ID:          strconv.FormatInt(p.PlaceID, 10),
			DisplayName: name,
			GroupKey:    p.Address.Country,
			Rank:        len(records),
			Popularity:  p.Importance,
		})
	}
	return records, nil
}
