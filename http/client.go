// Package http provides HTTP implementations of typeahead.Searcher for the
// remote search backends: a credentialed artist search API, a
// credential-free artist catalog API used as fallback, and a geocoding API
// for city names.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/typeahead"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// DefaultLimit is the default number of candidates requested per query.
const DefaultLimit = 10

// DefaultUserAgent identifies requests to public APIs that ask for one.
const DefaultUserAgent = "typeahead/1.0 (+https://github.com/fwojciec/typeahead)"

// options holds settings shared by every searcher in this package.
type options struct {
	client    *http.Client
	timeout   time.Duration
	limit     int
	country   string
	userAgent string
	limiter   *rate.Limiter
}

// Option configures a searcher.
type Option func(*options)

// WithHTTPClient overrides the HTTP client. The client's own timeout is
// kept; WithTimeout does not apply to a supplied client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLimit sets how many candidates are requested per query.
// Defaults to DefaultLimit if not specified.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithCountry narrows results to a country or market, given as an
// ISO 3166-1 alpha-2 code such as "CO" or "MX".
func WithCountry(code string) Option {
	return func(o *options) {
		o.country = code
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithRateLimiter makes every request wait on l before it is sent.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout:   DefaultTimeout,
		limit:     DefaultLimit,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: o.timeout}
	}
	return o
}

// getJSON sends a GET request to endpoint and decodes the JSON body into v.
// HTTP 401 is reported as EUNAUTHENTICATED and any other non-200 status as
// EUNAVAILABLE. A non-empty bearer token is sent in the Authorization header.
func (o *options) getJSON(ctx context.Context, endpoint *url.URL, bearer string, v any) error {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", o.userAgent)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return typeahead.Errorf(typeahead.EUNAUTHENTICATED, "HTTP %d for %s", resp.StatusCode, endpoint.Host)
	case resp.StatusCode != http.StatusOK:
		return typeahead.Errorf(typeahead.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, endpoint.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint.Host, err)
	}
	return nil
}

// buildURL joins baseURL and path and encodes params as the query string.
func buildURL(baseURL, path string, params url.Values) (*url.URL, error) {
	endpoint, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	endpoint = endpoint.JoinPath(path)
	endpoint.RawQuery = params.Encode()
	return endpoint, nil
}
