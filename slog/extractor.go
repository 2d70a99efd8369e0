package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/novelctx"
)

// Ensure LoggingExtractor implements novelctx.Extractor.
var _ novelctx.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs each call together with the
// warnings it reported.
type LoggingExtractor struct {
	next   novelctx.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next novelctx.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractMetadata delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractMetadata(ctx context.Context, url string) (work *novelctx.Work, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.ErrorContext(ctx, "extract metadata",
				"url", url,
				"duration", time.Since(begin),
				"code", novelctx.ErrorCode(err),
				"err", err,
			)
			return
		}
		e.logger.InfoContext(ctx, "extract metadata",
			"url", url,
			"layout", work.Layout,
			"title", work.Title,
			"episodes", len(work.Episodes),
			"duration", time.Since(begin),
		)
		e.warn(ctx, url, work.Warnings)
	}(time.Now())
	return e.next.ExtractMetadata(ctx, url)
}

// ExtractContent delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractContent(ctx context.Context, url string) (body *novelctx.Body, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.ErrorContext(ctx, "extract content",
				"url", url,
				"duration", time.Since(begin),
				"code", novelctx.ErrorCode(err),
				"err", err,
			)
			return
		}
		e.logger.DebugContext(ctx, "extract content",
			"url", url,
			"container", body.Container,
			"chars", body.CharCount(),
			"duration", time.Since(begin),
		)
		e.warn(ctx, url, body.Warnings)
	}(time.Now())
	return e.next.ExtractContent(ctx, url)
}

func (e *LoggingExtractor) warn(ctx context.Context, url string, warnings []novelctx.Warning) {
	for _, w := range warnings {
		e.logger.WarnContext(ctx, "extraction warning", "url", url, "warning", string(w))
	}
}
