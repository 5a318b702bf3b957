package wikiextract

import "context"

// Document is a rendered document tree that can be queried.
type Document interface {
	// Texts evaluates the selector and returns the inner text of every
	// matched node in document order. A selector that matches nothing
	// returns an empty, non-nil slice and no error.
	// Returns ESELECTOR if the query itself could not be evaluated.
	Texts(ctx context.Context, sel Selector) ([]string, error)
}

// RecordWriter persists extraction results.
type RecordWriter interface {
	// WriteRecord derives the record identifier from the title field and
	// persists the whole result under it, replacing any previous record
	// with the same identifier. It returns the location written.
	// Returns ENOTITLE when no identifier can be derived and EWRITE when
	// the record cannot be stored. No partial record is left behind.
	WriteRecord(ctx context.Context, result Result) (string, error)
}
