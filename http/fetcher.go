// Package http provides an HTTP-based implementation of webscrape.Fetcher.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webscrape"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize is the largest response body accepted.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "webscrape/1.0"

// Ensure Fetcher implements webscrape.Fetcher at compile time.
var _ webscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves resources with HTTP GET requests. Redirects are
// followed and the final URL is reported on the returned resource.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of body bytes accepted per response.
// A longer body fails the fetch with EINVALID. Zero or less disables the cap.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithClient replaces the underlying HTTP client. The client's timeout
// is left untouched.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the resource at url.
//
// Status 404 and 410 map to ENOTFOUND, 429 and 5xx to EUNAVAILABLE, and any
// other non-2xx status to EINVALID, as does a body over the size cap.
// Transport failures are returned as-is.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webscrape.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webscrape.Errorf(webscrape.EINVALID, "build request for %s: %s", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, webscrape.Errorf(statusCode(resp.StatusCode), "HTTP %d for %s", resp.StatusCode, url)
	}

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.maxBodySize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if f.maxBodySize > 0 && int64(len(data)) > f.maxBodySize {
		return nil, webscrape.Errorf(webscrape.EINVALID, "body exceeds %d bytes for %s", f.maxBodySize, url)
	}

	effective := url
	if resp.Request != nil && resp.Request.URL != nil {
		effective = resp.Request.URL.String()
	}

	return &webscrape.Resource{
		URL:         effective,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func statusCode(status int) string {
	switch {
	case status == http.StatusNotFound, status == http.StatusGone:
		return webscrape.ENOTFOUND
	case status == http.StatusTooManyRequests, status >= 500:
		return webscrape.EUNAVAILABLE
	default:
		return webscrape.EINVALID
	}
}
