package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/webscrape"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*webscrape.Resource, error)

// LogFunc is the signature for a structured logging function taking a
// message and alternating key/value pairs, matching slog.Logger.Info.
type LogFunc func(msg string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return RetryDelays(3)
}

// RetryDelays returns n exponential backoff delays starting at one second.
// It returns nil when n is not positive.
func RetryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// FetchWithRetry fetches url, retrying transient failures once per entry in
// delays and sleeping that long before each retry. A nil or empty delays
// slice means a single attempt.
//
// Errors coded EINVALID or ENOTFOUND are permanent and returned at once.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (*webscrape.Resource, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry", "url", url, "attempt", attempt+2, "delay", delays[attempt], "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch webscrape.ErrorCode(err) {
	case webscrape.EINVALID, webscrape.ENOTFOUND:
		return false
	}
	return true
}
