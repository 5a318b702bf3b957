package index_test

import (
	"testing"

	"github.com/fwojciec/wikiextract"
	"github.com/fwojciec/wikiextract/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docIDs(docs []index.Doc) []int {
	ids := []int{}
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestParseBoolean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		postfix string
	}{
		{"geralt", "geralt"},
		{"Geralt AND Ciri", "geralt ciri AND"},
		{"a OR b AND c", "a b c AND OR"},
		{"(a OR b) AND c", "a b OR c AND"},
		{"NOT a AND b", "a NOT b AND"},
		{"NOT (a OR b)", "a b OR NOT"},
		{"NOT NOT a", "a"},
		{"a b", "a b OR"},
		{"a (b)", "a b OR"},
		{"(a) NOT b", "a b NOT OR"},
		{"NOT Geralt AND (z OR NOT NOT Rivie)", "geralt NOT z rivie OR AND"},
		{"a OR b OR c", "a b OR c OR"},
		{"1a", "1+a"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			expr, err := index.ParseBoolean(tt.query, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.postfix, expr.String())
		})
	}
}

func TestParseBoolean_Invalid(t *testing.T) {
	t.Parallel()

	for _, query := range []string{"", "   ", "AND geralt", "geralt OR", "geralt AND OR ciri", "(geralt", "geralt)", "()", "NOT", "geralt (AND ciri)"} {
		t.Run(query, func(t *testing.T) {
			t.Parallel()

			_, err := index.ParseBoolean(query, nil)

			assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
		})
	}
}

func TestIndex_Boolean(t *testing.T) {
	t.Parallel()

	ix := witcherIndex(t)

	tests := []struct {
		name  string
		query string
		field index.Field
		want  []int
	}{
		{"and intersects", "geralt AND witcher", index.FieldAll, []int{0}},
		{"or unites", "geralt OR ciri", index.FieldAll, []int{0, 1, 2}},
		{"not complements", "NOT geralt", index.FieldAll, []int{1}},
		{"adjacent terms are or-ed", "ciri yennefer", index.FieldAll, []int{1, 2}},
		{"and binds tighter than or", "ciri OR yennefer AND witcher", index.FieldAll, []int{1}},
		{"parentheses group", "(ciri OR yennefer) AND sorceress", index.FieldAll, []int{2}},
		{"nested negation", "NOT Geralt AND (daughter OR NOT NOT sorceress)", index.FieldAll, []int{1}},
		{"lowercase operators are terms", "geralt and ciri", index.FieldAll, []int{0, 1, 2}},
		{"unknown term matches nothing", "nilfgaard", index.FieldAll, []int{}},
		{"not of unknown term matches everything", "NOT nilfgaard", index.FieldAll, []int{0, 1, 2}},
		{"title field", "vengerberg", index.FieldTitle, []int{2}},
		{"title field ignores body", "sorceress", index.FieldTitle, []int{}},
		{"content field ignores title", "vengerberg", index.FieldContent, []int{}},
		{"content field", "rivia", index.FieldContent, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			docs, err := ix.Boolean(tt.query, tt.field)

			require.NoError(t, err)
			assert.Equal(t, tt.want, docIDs(docs))
		})
	}
}

func TestIndex_Boolean_Invalid(t *testing.T) {
	t.Parallel()

	ix := witcherIndex(t)

	_, err := ix.Boolean("geralt AND", index.FieldAll)

	assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
}

func TestIndex_Boolean_ReturnsRecords(t *testing.T) {
	t.Parallel()

	ix := witcherIndex(t)

	docs, err := ix.Boolean("daughter", index.FieldAll)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ciri", docs[0].Title)
	assert.Equal(t, []string{"Ciri"}, docs[0].Record["title"])
}
