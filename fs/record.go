// Package fs provides file-based storage for extraction records.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wikiextract"
	"golang.org/x/sync/errgroup"
)

// Ext is the file extension of persisted records.
const Ext = ".json"

// MaxNameLen is the longest file name, in bytes, common filesystems accept.
const MaxNameLen = 255

// Ensure RecordWriter implements wikiextract.RecordWriter at compile time.
var _ wikiextract.RecordWriter = (*RecordWriter)(nil)

// RecordWriter writes each record to <dir>/<title>.json.
// Records are written to a temporary file in dir and renamed into place,
// so a failed write never leaves a partial record behind.
type RecordWriter struct {
	dir string
}

// NewRecordWriter creates a RecordWriter targeting dir.
// The directory is created on first write if it does not exist.
func NewRecordWriter(dir string) *RecordWriter {
	return &RecordWriter{dir: dir}
}

// Dir returns the output directory.
func (w *RecordWriter) Dir() string {
	return w.dir
}

// WriteRecord persists result under its title and returns the file path.
func (w *RecordWriter) WriteRecord(ctx context.Context, result wikiextract.Result) (string, error) {
	title, err := result.Title()
	if err != nil {
		return "", err
	}

	name, err := Filename(title)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", wikiextract.Wrap(wikiextract.EWRITE, err, "writing %q", name)
	}

	data, err := Marshal(result)
	if err != nil {
		return "", wikiextract.Wrap(wikiextract.EWRITE, err, "encoding %q", name)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", wikiextract.Wrap(wikiextract.EWRITE, err, "creating output directory")
	}

	path := filepath.Join(w.dir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", wikiextract.Wrap(wikiextract.EWRITE, err, "writing %q", name)
	}
	return path, nil
}

// Filename returns the record file name for a title.
//
// Titles are used verbatim. A title that cannot be a single file name
// (path separators, NUL, "." or "..", or longer than MaxNameLen bytes once
// Ext is appended) is rejected rather than rewritten, so two different
// titles never map to the same file.
func Filename(title string) (string, error) {
	switch {
	case strings.ContainsAny(title, `/\`):
		return "", wikiextract.Errorf(wikiextract.EWRITE, "title %q contains a path separator", title)
	case strings.ContainsRune(title, 0):
		return "", wikiextract.Errorf(wikiextract.EWRITE, "title %q contains a NUL byte", title)
	case title == "." || title == "..":
		return "", wikiextract.Errorf(wikiextract.EWRITE, "title %q is not a valid file name", title)
	case len(title)+len(Ext) > MaxNameLen:
		return "", wikiextract.Errorf(wikiextract.EWRITE, "title is too long for a file name (%d bytes)", len(title))
	}
	return title + Ext, nil
}

// Marshal encodes a result as indented JSON. Non-ASCII text and HTML
// characters are written verbatim.
func Marshal(result wikiextract.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadRecord reads a record written by RecordWriter.
// Returns ENOTFOUND if the file does not exist.
func ReadRecord(path string) (wikiextract.Result, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, wikiextract.Errorf(wikiextract.ENOTFOUND, "record %q not found", path)
	} else if err != nil {
		return nil, err
	}

	var result wikiextract.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, wikiextract.Wrap(wikiextract.EINVALID, err, "decoding record %q", path)
	}
	return result, nil
}

// Record is a persisted record and the file it was read from.
type Record struct {
	Path   string
	Result wikiextract.Result
}

// ReadRecords reads every record file (Ext) directly inside dir, in file
// name order. Files are decoded concurrently, at most limit at a time when
// limit is positive. Returns ENOTFOUND if dir does not exist.
func ReadRecords(ctx context.Context, dir string, limit int) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, wikiextract.Errorf(wikiextract.ENOTFOUND, "record directory %q not found", dir)
	} else if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EINVALID, err, "reading record directory %q", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == Ext {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	records := make([]Record, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := ReadRecord(path)
			if err != nil {
				return err
			}
			records[i] = Record{Path: path, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path. The temp file is removed on every failure.
func writeFileAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".record-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
