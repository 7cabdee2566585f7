package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/webscrape"
	"github.com/fwojciec/webscrape/mock"
	wsslog "github.com/fwojciec/webscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("logs save with hash", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var saved *webscrape.Page
		inner := &mock.Store{
			SaveFn: func(ctx context.Context, page *webscrape.Page) error {
				saved = page
				return nil
			},
		}

		page := &webscrape.Page{URL: "https://example.com/", Body: []byte("hello"), Hash: "abc123"}
		err := wsslog.NewLoggingStore(inner, newTestLogger(&buf)).Save(context.Background(), page)

		require.NoError(t, err)
		assert.Same(t, page, saved)
		output := buf.String()
		assert.Contains(t, output, "msg=save")
		assert.Contains(t, output, "url=https://example.com/")
		assert.Contains(t, output, "bytes=5")
		assert.Contains(t, output, "hash=abc123")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Store{
			SaveFn: func(ctx context.Context, page *webscrape.Page) error {
				return errors.New("disk full")
			},
		}

		err := wsslog.NewLoggingStore(inner, newTestLogger(&buf)).Save(context.Background(), &webscrape.Page{URL: "https://example.com/"})

		require.EqualError(t, err, "disk full")
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}
