package mock

import (
	"context"

	"github.com/fwojciec/wikiextract"
)

var _ wikiextract.RunJournal = (*RunJournal)(nil)

// RunJournal is a mock implementation of wikiextract.RunJournal.
type RunJournal struct {
	RecordRunFn func(ctx context.Context, run *wikiextract.Run) error
	FindRunsFn  func(ctx context.Context, filter wikiextract.RunFilter) ([]*wikiextract.Run, error)
}

func (j *RunJournal) RecordRun(ctx context.Context, run *wikiextract.Run) error {
	return j.RecordRunFn(ctx, run)
}

func (j *RunJournal) FindRuns(ctx context.Context, filter wikiextract.RunFilter) ([]*wikiextract.Run, error) {
	return j.FindRunsFn(ctx, filter)
}
