package sqlite

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikiextract"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wikiextract.RunJournal = (*RunJournal)(nil)

// RunJournal implements wikiextract.RunJournal using SQLite.
type RunJournal struct {
	db *DB
}

// NewRunJournal creates a new RunJournal.
func NewRunJournal(db *DB) *RunJournal {
	return &RunJournal{db: db}
}

// hashFile computes the xxHash of the file at path as a hex string.
// A missing file hashes to the empty string.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// RecordRun stores a run. The written record, if any, is hashed so later
// runs can tell whether a page changed.
func (j *RunJournal) RecordRun(ctx context.Context, run *wikiextract.Run) error {
	if strings.TrimSpace(run.URL) == "" {
		return wikiextract.Errorf(wikiextract.EINVALID, "run url required")
	}
	if run.State == "" {
		return wikiextract.Errorf(wikiextract.EINVALID, "run state required")
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}
	if run.ContentHash == "" && run.Path != "" {
		hash, err := hashFile(run.Path)
		if err != nil {
			return wikiextract.Wrap(wikiextract.EINTERNAL, err, "hashing %s", run.Path)
		}
		run.ContentHash = hash
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (id, url, title, state, error_code, error, path, field_count, value_count, content_hash, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.URL, run.Title, run.State, run.ErrorCode, run.Error, run.Path,
		run.Fields, run.Values, run.ContentHash, formatTime(run.StartedAt), formatTime(run.FinishedAt))

	return err
}

// FindRuns retrieves runs matching the filter, most recent first.
func (j *RunJournal) FindRuns(ctx context.Context, filter wikiextract.RunFilter) ([]*wikiextract.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, state, error_code, error, path, field_count, value_count, content_hash, started_at, finished_at FROM runs WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := j.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*wikiextract.Run
	for rows.Next() {
		var run wikiextract.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.URL, &run.Title, &run.State, &run.ErrorCode, &run.Error,
			&run.Path, &run.Fields, &run.Values, &run.ContentHash, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
