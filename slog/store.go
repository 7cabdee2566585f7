package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webscrape"
)

// Ensure LoggingStore implements webscrape.Store.
var _ webscrape.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with logging.
type LoggingStore struct {
	next   webscrape.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next webscrape.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingStore) Save(ctx context.Context, page *webscrape.Page) (err error) {
	defer func(begin time.Time) {
		logResult(ctx, s.logger, "save", begin, err,
			"url", page.URL,
			"bytes", len(page.Body),
			"hash", page.Hash,
		)
	}(time.Now())
	return s.next.Save(ctx, page)
}
