package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/wikiextract"
	main "github.com/fwojciec/wikiextract/cmd/langdetect"
	"github.com/fwojciec/wikiextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prefixDetector predicts the language named by the first two runes of text.
func prefixDetector() *mock.LanguageDetector {
	return &mock.LanguageDetector{
		DetectFn: func(_ context.Context, text string) (wikiextract.Language, error) {
			if len(text) < 2 {
				return wikiextract.LanguageUnknown, nil
			}
			return wikiextract.Language(text[:2]), nil
		},
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := main.NewMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "langdetect")
	assert.Contains(t, stdout.String(), "--dir")
}

func TestMain_Run_Inputs(t *testing.T) {
	t.Parallel()

	t.Run("requires an input", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{}, &stdout, &stderr)

		assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
	})

	t.Run("flags without an input are rejected", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{"--verbose"}, &stdout, &stderr)

		assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
	})

	t.Run("rejects more than one input", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		dir := t.TempDir()

		err := main.NewMain().Run(context.Background(), []string{"--dir", dir, "--text", "hello"}, &stdout, &stderr)

		assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{"--file", filepath.Join(t.TempDir(), "nope.txt")}, &stdout, &stderr)

		require.Error(t, err)
	})
}

func TestMain_Run_Text(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Detector = prefixDetector()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--text", "pl: Wiedźmin"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "pl\n", stdout.String())
}

func TestMain_Run_File(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"geralt.txt": "en Geralt"})
	m := main.NewMain()
	m.Detector = prefixDetector()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--file", filepath.Join(dir, "geralt.txt")}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "geralt\ten\n", stdout.String())
}

func TestMain_Run_Dir(t *testing.T) {
	t.Parallel()

	t.Run("classifies every file sorted by identifier", func(t *testing.T) {
		t.Parallel()

		// Given a directory of files and a subdirectory
		dir := writeFiles(t, map[string]string{
			"c.txt": "ru текст",
			"a.txt": "cs text",
			"b.md":  "de Text",
		})
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
		m := main.NewMain()
		m.Detector = prefixDetector()
		var stdout, stderr bytes.Buffer

		// When the directory is classified
		err := m.Run(context.Background(), []string{"--dir", dir, "--concurrency", "2"}, &stdout, &stderr)

		// Then each regular file gets one line, in identifier order
		require.NoError(t, err)
		assert.Equal(t, "a\tcs\nb\tde\nc\tru\n", stdout.String())
	})

	t.Run("empty directory prints nothing", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Detector = prefixDetector()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--dir", t.TempDir()}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
	})

	t.Run("detector error stops the run", func(t *testing.T) {
		t.Parallel()

		dir := writeFiles(t, map[string]string{"a.txt": "x", "b.txt": "y"})
		var calls atomic.Int32
		m := main.NewMain()
		m.Detector = &mock.LanguageDetector{
			DetectFn: func(_ context.Context, _ string) (wikiextract.Language, error) {
				calls.Add(1)
				return "", errors.New("model unavailable")
			},
		}
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--dir", dir, "--concurrency", "1"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.GreaterOrEqual(t, calls.Load(), int32(1))
	})
}

func TestMain_Run_Whatlanggo(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"en.txt": "The witcher travels the Continent hunting monsters for coin and tries to stay out of politics.",
		"pl.txt": "Wiedźmin wędruje po świecie i poluje na potwory za pieniądze, unikając polityki.",
	})
	var stdout, stderr bytes.Buffer

	err := main.NewMain().Run(context.Background(), []string{"--dir", dir}, &stdout, &stderr)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{"en\ten", "pl\tpl"}, lines)
}
