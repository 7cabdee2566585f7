package mock

import (
	"context"

	"github.com/fwojciec/webscrape"
)

var _ webscrape.Store = (*Store)(nil)

// Store is a mock implementation of webscrape.Store.
type Store struct {
	SaveFn func(ctx context.Context, page *webscrape.Page) error
}

func (s *Store) Save(ctx context.Context, page *webscrape.Page) error {
	return s.SaveFn(ctx, page)
}
