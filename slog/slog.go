// Package slog provides logging decorators for the webscrape service
// interfaces. Successful calls are logged at debug level and failures at
// warn level, each with the call's duration.
package slog

import (
	"context"
	"log/slog"
	"time"
)

// logResult logs msg at debug level, or at warn level when err is set.
func logResult(ctx context.Context, logger *slog.Logger, msg string, begin time.Time, err error, args ...any) {
	args = append(args, "duration", time.Since(begin))
	if err != nil {
		logger.WarnContext(ctx, msg, append(args, "err", err)...)
		return
	}
	logger.DebugContext(ctx, msg, args...)
}
