package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/webscrape"
	"github.com/fwojciec/webscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ webscrape.Store = &mock.Store{}
}

func TestStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *webscrape.Page
		s := &mock.Store{
			SaveFn: func(_ context.Context, page *webscrape.Page) error {
				calledWith = page
				return nil
			},
		}

		page := &webscrape.Page{
			URL:         "https://x.test/doc",
			ContentType: "text/html",
			Body:        []byte("<p>doc</p>"),
		}

		err := s.Save(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, page, calledWith)
	})
}
