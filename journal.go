package wikiextract

import (
	"context"
	"time"
)

// Run describes one completed pipeline run.
type Run struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	State       string    `json:"state"`
	ErrorCode   string    `json:"errorCode"`
	Error       string    `json:"error"`
	Path        string    `json:"path"`
	Fields      int       `json:"fields"`
	Values      int       `json:"values"`
	ContentHash string    `json:"contentHash"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Succeeded reports whether the run wrote a record.
func (r *Run) Succeeded() bool {
	return r.ErrorCode == "" && r.Path != ""
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	URL   *string `json:"url"`
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunJournal keeps a history of pipeline runs. It never stores the
// extracted content itself.
type RunJournal interface {
	// RecordRun stores a run. ID and ContentHash are assigned if empty.
	RecordRun(ctx context.Context, run *Run) error

	// FindRuns returns runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}
