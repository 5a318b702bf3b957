// Package extract runs the single-page extraction pipeline: launch a
// rendering engine, fetch one page, evaluate a selector set against it and
// persist the result.
package extract

import (
	"context"
	"log/slog"

	"github.com/fwojciec/wikiextract"
)

// Extractor evaluates selector sets against documents.
// Each selector is evaluated independently: a selector that fails is left
// out of the result and never stops the remaining selectors.
type Extractor struct {
	Logger *slog.Logger
}

// Extract evaluates every selector in set against doc.
//
// Fields whose query matched nothing map to an empty slice. Fields whose
// query failed are absent from the result and reported in the returned
// error map, keyed by field name.
func (e *Extractor) Extract(ctx context.Context, doc wikiextract.Document, set wikiextract.SelectorSet) (wikiextract.Result, map[string]error) {
	logger := e.logger()
	result := make(wikiextract.Result, len(set))
	var failed map[string]error

	for _, sel := range set {
		texts, err := doc.Texts(ctx, sel)
		if err != nil {
			if failed == nil {
				failed = make(map[string]error)
			}
			failed[sel.Field] = err
			logger.Warn("selector failed",
				"field", sel.Field,
				"query", sel.Query,
				"err", err,
			)
			continue
		}
		if texts == nil {
			texts = []string{}
		}
		result[sel.Field] = texts
	}

	return result, failed
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
