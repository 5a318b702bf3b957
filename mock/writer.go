package mock

import (
	"context"

	"github.com/fwojciec/wikiextract"
)

var _ wikiextract.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of wikiextract.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, result wikiextract.Result) (string, error)
}

func (w *RecordWriter) WriteRecord(ctx context.Context, result wikiextract.Result) (string, error) {
	return w.WriteRecordFn(ctx, result)
}
