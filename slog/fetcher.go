package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webscrape"
)

// Ensure LoggingFetcher implements webscrape.Fetcher.
var _ webscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   webscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *webscrape.Resource, err error) {
	defer func(begin time.Time) {
		args := []any{"url", url}
		if res != nil {
			args = append(args, "bytes", len(res.Body), "type", res.ContentType)
			if res.URL != "" && res.URL != url {
				args = append(args, "effective", res.URL)
			}
		}
		logResult(ctx, f.logger, "fetch", begin, err, args...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
