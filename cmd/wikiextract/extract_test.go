package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/wikiextract"
	main "github.com/fwojciec/wikiextract/cmd/wikiextract"
	"github.com/fwojciec/wikiextract/extract"
	"github.com/fwojciec/wikiextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticLauncher(doc wikiextract.Document) *mock.Launcher {
	return &mock.Launcher{
		LaunchFn: func(_ context.Context) (wikiextract.Session, error) {
			return &mock.Session{
				FetchFn: func(_ context.Context, _ string) (wikiextract.Document, error) { return doc, nil },
				CloseFn: func() error { return nil },
			}, nil
		},
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints written path", func(t *testing.T) {
		t.Parallel()

		doc := &mock.Document{
			TextsFn: func(_ context.Context, _ wikiextract.Selector) ([]string, error) {
				return []string{"Ciri"}, nil
			},
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Pipeline: &extract.Pipeline{
				Launcher:  staticLauncher(doc),
				Selectors: wikiextract.SelectorSet{wikiextract.CSS("title", "h1")},
				Writer: &mock.RecordWriter{
					WriteRecordFn: func(_ context.Context, _ wikiextract.Result) (string, error) {
						return "data/Ciri.json", nil
					},
				},
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/Ciri"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "data/Ciri.json\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("warns about failed fields", func(t *testing.T) {
		t.Parallel()

		doc := &mock.Document{
			TextsFn: func(_ context.Context, sel wikiextract.Selector) ([]string, error) {
				if sel.Field == "toc" {
					return nil, errors.New("detached")
				}
				return []string{"Ciri"}, nil
			},
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Pipeline: &extract.Pipeline{
				Launcher: staticLauncher(doc),
				Selectors: wikiextract.SelectorSet{
					wikiextract.CSS("title", "h1"),
					wikiextract.CSS("toc", "#toc"),
				},
				Writer: &mock.RecordWriter{
					WriteRecordFn: func(_ context.Context, _ wikiextract.Result) (string, error) {
						return "data/Ciri.json", nil
					},
				},
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/Ciri"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), `field "toc" could not be extracted`)
	})

	t.Run("warns about failed fields in name order", func(t *testing.T) {
		t.Parallel()

		// Given a page where every field but the title fails
		doc := &mock.Document{
			TextsFn: func(_ context.Context, sel wikiextract.Selector) ([]string, error) {
				if sel.Field == wikiextract.TitleField {
					return []string{"Ciri"}, nil
				}
				return nil, errors.New("detached")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Pipeline: &extract.Pipeline{
				Launcher:  staticLauncher(doc),
				Selectors: wikiextract.WikiContent,
				Writer: &mock.RecordWriter{
					WriteRecordFn: func(_ context.Context, _ wikiextract.Result) (string, error) {
						return "data/Ciri.json", nil
					},
				},
			},
		}

		// When the command runs several times
		var outputs []string
		for range 5 {
			stderr.Reset()
			err := (&main.ExtractCmd{URL: "https://example.com/Ciri"}).Run(deps)
			require.NoError(t, err)
			outputs = append(outputs, stderr.String())
		}

		// Then the warnings are always listed alphabetically
		want := "warning: field \"content\" could not be extracted\n" +
			"warning: field \"h1\" could not be extracted\n" +
			"warning: field \"h2\" could not be extracted\n" +
			"warning: field \"h3\" could not be extracted\n" +
			"warning: field \"toc\" could not be extracted\n"
		for _, got := range outputs {
			assert.Equal(t, want, got)
		}
	})

	t.Run("returns the error without printing it", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Pipeline: &extract.Pipeline{
				Launcher: &mock.Launcher{
					LaunchFn: func(_ context.Context) (wikiextract.Session, error) {
						return &mock.Session{
							FetchFn: func(_ context.Context, _ string) (wikiextract.Document, error) {
								return nil, errors.New("timeout")
							},
							CloseFn: func() error { return nil },
						}, nil
					},
				},
				Writer: &mock.RecordWriter{},
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/x", Engine: "http"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, wikiextract.EFETCH, wikiextract.ErrorCode(err))
		assert.Equal(t, "fetching https://example.com/x", wikiextract.ErrorMessage(err))
		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})
}

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with status", func(t *testing.T) {
		t.Parallel()

		var gotFilter wikiextract.RunFilter
		journal := &mock.RunJournal{
			FindRunsFn: func(_ context.Context, filter wikiextract.RunFilter) ([]*wikiextract.Run, error) {
				gotFilter = filter
				return []*wikiextract.Run{
					{URL: "https://example.com/yen", ErrorCode: wikiextract.ENOTITLE, StartedAt: time.Now()},
					{URL: "https://example.com/ciri", Path: "data/Ciri.json", StartedAt: time.Now()},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Journal: journal,
		}

		err := (&main.RunsCmd{URL: "https://example.com/ciri", Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotFilter.Limit)
		require.NotNil(t, gotFilter.URL)
		assert.Equal(t, "https://example.com/ciri", *gotFilter.URL)
		output := stdout.String()
		assert.Contains(t, output, "no_title")
		assert.Contains(t, output, "ok")
		assert.Contains(t, output, "data/Ciri.json")
	})

	t.Run("shows message when journal is empty", func(t *testing.T) {
		t.Parallel()

		journal := &mock.RunJournal{
			FindRunsFn: func(_ context.Context, _ wikiextract.RunFilter) ([]*wikiextract.Run, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Journal: journal}

		err := (&main.RunsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded.")
	})

	t.Run("returns journal error", func(t *testing.T) {
		t.Parallel()

		journal := &mock.RunJournal{
			FindRunsFn: func(_ context.Context, _ wikiextract.RunFilter) ([]*wikiextract.Run, error) {
				return nil, errors.New("database is locked")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Journal: journal}

		err := (&main.RunsCmd{}).Run(deps)

		require.Error(t, err)
		assert.EqualError(t, err, "database is locked")
		assert.Empty(t, stderr.String())
	})
}
