package slog_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/webscrape"
	"github.com/fwojciec/webscrape/mock"
	wsslog "github.com/fwojciec/webscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("logs link count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkExtractor{
			ExtractLinksFn: func(body []byte, contentType, baseURL string) ([]string, error) {
				return []string{"https://example.com/a", "https://example.com/b"}, nil
			},
		}

		links, err := wsslog.NewLoggingExtractor(inner, newTestLogger(&buf)).
			ExtractLinks([]byte("<a>"), "text/html", "https://example.com/")

		require.NoError(t, err)
		assert.Len(t, links, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=\"extract links\"")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "type=text/html")
	})

	t.Run("logs decode failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkExtractor{
			ExtractLinksFn: func(body []byte, contentType, baseURL string) ([]string, error) {
				return nil, webscrape.Errorf(webscrape.EINVALID, "bad charset")
			},
		}

		_, err := wsslog.NewLoggingExtractor(inner, newTestLogger(&buf)).
			ExtractLinks(nil, "text/html", "https://example.com/")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
	})
}
