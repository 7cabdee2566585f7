package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webscrape"
)

// Ensure LoggingExtractor implements webscrape.LinkExtractor.
var _ webscrape.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with logging.
type LoggingExtractor struct {
	next   webscrape.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next webscrape.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractLinks(body []byte, contentType, baseURL string) (links []string, err error) {
	defer func(begin time.Time) {
		logResult(context.Background(), e.logger, "extract links", begin, err,
			"url", baseURL,
			"type", contentType,
			"count", len(links),
		)
	}(time.Now())
	return e.next.ExtractLinks(body, contentType, baseURL)
}
