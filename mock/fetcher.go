package mock

import (
	"context"

	"github.com/fwojciec/webscrape"
)

var _ webscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*webscrape.Resource, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*webscrape.Resource, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
