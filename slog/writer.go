package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiextract"
)

// Ensure LoggingRecordWriter implements wikiextract.RecordWriter.
var _ wikiextract.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter with logging.
type LoggingRecordWriter struct {
	next   wikiextract.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next wikiextract.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecord delegates to the wrapped writer and logs the operation.
func (w *LoggingRecordWriter) WriteRecord(ctx context.Context, result wikiextract.Result) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write record",
			"path", path,
			"fields", len(result),
			"values", result.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecord(ctx, result)
}
