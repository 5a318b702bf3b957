package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiextract"
)

// Ensure LoggingLanguageDetector implements wikiextract.LanguageDetector.
var _ wikiextract.LanguageDetector = (*LoggingLanguageDetector)(nil)

// LoggingLanguageDetector wraps a LanguageDetector with debug logging.
type LoggingLanguageDetector struct {
	next   wikiextract.LanguageDetector
	logger *slog.Logger
}

// NewLoggingLanguageDetector creates a new LoggingLanguageDetector.
func NewLoggingLanguageDetector(next wikiextract.LanguageDetector, logger *slog.Logger) *LoggingLanguageDetector {
	return &LoggingLanguageDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the prediction.
func (d *LoggingLanguageDetector) Detect(ctx context.Context, text string) (lang wikiextract.Language, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("language detection",
			"chars", len([]rune(text)),
			"lang", string(lang),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Detect(ctx, text)
}
