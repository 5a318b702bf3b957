package mock

import (
	"context"

	"github.com/fwojciec/wikiextract"
)

var _ wikiextract.Document = (*Document)(nil)

// Document is a mock implementation of wikiextract.Document.
type Document struct {
	TextsFn func(ctx context.Context, sel wikiextract.Selector) ([]string, error)
}

func (d *Document) Texts(ctx context.Context, sel wikiextract.Selector) ([]string, error) {
	return d.TextsFn(ctx, sel)
}
