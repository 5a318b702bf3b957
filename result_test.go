package wikiextract_test

import (
	"testing"

	"github.com/fwojciec/wikiextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Title(t *testing.T) {
	t.Parallel()

	t.Run("returns first title value", func(t *testing.T) {
		t.Parallel()

		r := wikiextract.Result{"title": {"Geralt of Rivia", "ignored"}}

		title, err := r.Title()

		require.NoError(t, err)
		assert.Equal(t, "Geralt of Rivia", title)
	})

	t.Run("trims whitespace around the identifier only", func(t *testing.T) {
		t.Parallel()

		// Given a title as innerText reports it, with a trailing newline
		r := wikiextract.Result{"title": {"\n Geralt of Rivia \n"}}

		// When the identifier is taken
		title, err := r.Title()

		// Then it is trimmed and the stored value is left alone
		require.NoError(t, err)
		assert.Equal(t, "Geralt of Rivia", title)
		assert.Equal(t, "\n Geralt of Rivia \n", r["title"][0])
	})

	t.Run("absent title field", func(t *testing.T) {
		t.Parallel()

		r := wikiextract.Result{"h2": {"Biography"}}

		_, err := r.Title()

		assert.Equal(t, wikiextract.ENOTITLE, wikiextract.ErrorCode(err))
	})

	t.Run("empty title field", func(t *testing.T) {
		t.Parallel()

		r := wikiextract.Result{"title": {}}

		_, err := r.Title()

		assert.Equal(t, wikiextract.ENOTITLE, wikiextract.ErrorCode(err))
	})

	t.Run("blank title value", func(t *testing.T) {
		t.Parallel()

		r := wikiextract.Result{"title": {"   "}}

		_, err := r.Title()

		assert.Equal(t, wikiextract.ENOTITLE, wikiextract.ErrorCode(err))
	})
}

func TestResult_Len(t *testing.T) {
	t.Parallel()

	r := wikiextract.Result{
		"title": {"A"},
		"h2":    {"B", "C"},
		"toc":   {},
	}

	assert.Equal(t, 3, r.Len())
}
