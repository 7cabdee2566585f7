package webscrape

import "context"

// Resource is the raw outcome of a successful fetch.
type Resource struct {
	// URL is the effective URL the body was served from, after redirects.
	URL string

	// ContentType is the Content-Type header value, possibly empty.
	ContentType string

	Body []byte
}

// Fetcher retrieves resources from URLs.
type Fetcher interface {
	// Fetch retrieves the resource at url.
	// Returns an error on unreachable host, timeout, or non-2xx response.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Resource, error)

	// Close releases resources held by the fetcher.
	Close() error
}
