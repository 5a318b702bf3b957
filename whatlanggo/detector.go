// Package whatlanggo implements wikiextract.LanguageDetector with
// whatlanggo's trigram profiles.
package whatlanggo

import (
	"context"
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/wikiextract"
)

// Compile-time interface verification.
var _ wikiextract.LanguageDetector = (*Detector)(nil)

// whitelist restricts predictions to wikiextract.Languages.
var whitelist = map[whatlanggo.Lang]bool{
	whatlanggo.Ces: true,
	whatlanggo.Deu: true,
	whatlanggo.Eng: true,
	whatlanggo.Spa: true,
	whatlanggo.Fra: true,
	whatlanggo.Ita: true,
	whatlanggo.Pol: true,
	whatlanggo.Por: true,
	whatlanggo.Rus: true,
	whatlanggo.Slk: true,
}

// Detector predicts the language of a text from the closed set
// wikiextract.Languages.
type Detector struct {
	// MinConfidence is the confidence below which Detect reports
	// wikiextract.LanguageUnknown. Zero accepts every prediction.
	MinConfidence float64
}

// NewDetector returns a Detector that accepts every prediction.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the predicted language of text.
func (d *Detector) Detect(ctx context.Context, text string) (wikiextract.Language, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return wikiextract.LanguageUnknown, nil
	}

	info := whatlanggo.DetectWithOptions(text, whatlanggo.Options{Whitelist: whitelist})
	if !whitelist[info.Lang] || info.Confidence < d.MinConfidence {
		return wikiextract.LanguageUnknown, nil
	}
	return wikiextract.Language(info.Lang.Iso6391()), nil
}
