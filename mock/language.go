package mock

import (
	"context"

	"github.com/fwojciec/wikiextract"
)

var _ wikiextract.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of wikiextract.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(ctx context.Context, text string) (wikiextract.Language, error)
}

func (d *LanguageDetector) Detect(ctx context.Context, text string) (wikiextract.Language, error) {
	return d.DetectFn(ctx, text)
}
