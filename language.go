package wikiextract

import "context"

// Language is an ISO 639-1 language code.
type Language string

// LanguageUnknown is returned when no language could be predicted.
const LanguageUnknown Language = "und"

// Languages is the closed set of languages the classifier predicts.
var Languages = []Language{"cs", "de", "en", "es", "fr", "it", "pl", "pt", "ru", "sk"}

// LanguageDetector predicts the language of a text.
// It is independent of the extraction pipeline.
type LanguageDetector interface {
	// Detect returns one of Languages, or LanguageUnknown.
	Detect(ctx context.Context, text string) (Language, error)
}
