package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/wikiextract"
	"github.com/fwojciec/wikiextract/mock"
	weslog "github.com/fwojciec/wikiextract/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordWriter_WriteRecord(t *testing.T) {
	t.Parallel()

	t.Run("logs path and counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordWriter{
			WriteRecordFn: func(_ context.Context, _ wikiextract.Result) (string, error) {
				return "data/Ciri.json", nil
			},
		}

		w := weslog.NewLoggingRecordWriter(inner, logger)
		path, err := w.WriteRecord(context.Background(), wikiextract.Result{
			"title": {"Ciri"},
			"h2":    {"Biography", "Appearance"},
		})

		require.NoError(t, err)
		assert.Equal(t, "data/Ciri.json", path)
		output := buf.String()
		assert.Contains(t, output, "write record")
		assert.Contains(t, output, "path=data/Ciri.json")
		assert.Contains(t, output, "fields=2")
		assert.Contains(t, output, "values=3")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordWriter{
			WriteRecordFn: func(_ context.Context, _ wikiextract.Result) (string, error) {
				return "", errors.New("disk full")
			},
		}

		w := weslog.NewLoggingRecordWriter(inner, logger)
		_, err := w.WriteRecord(context.Background(), wikiextract.Result{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}

func TestLoggingLanguageDetector_Detect(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.LanguageDetector{
		DetectFn: func(_ context.Context, _ string) (wikiextract.Language, error) {
			return "pl", nil
		},
	}

	d := weslog.NewLoggingLanguageDetector(inner, logger)
	lang, err := d.Detect(context.Background(), "Wiedźmin")

	require.NoError(t, err)
	assert.Equal(t, wikiextract.Language("pl"), lang)
	output := buf.String()
	assert.Contains(t, output, "language detection")
	assert.Contains(t, output, "lang=pl")
	assert.Contains(t, output, "chars=8")
}
