// Package snowball implements wikiextract.Stemmer with the Snowball
// stemming algorithms.
package snowball

import (
	"slices"

	"github.com/fwojciec/wikiextract"
	"github.com/kljensen/snowball"
)

// Ensure Stemmer implements wikiextract.Stemmer at compile time.
var _ wikiextract.Stemmer = (*Stemmer)(nil)

// Languages lists the languages with a Snowball stemmer.
var Languages = []string{"english", "french", "hungarian", "norwegian", "russian", "spanish", "swedish"}

// Stemmer stems words of a single language.
type Stemmer struct {
	language string
}

// NewStemmer returns a stemmer for language, one of Languages.
// Returns EINVALID for any other language.
func NewStemmer(language string) (*Stemmer, error) {
	if !slices.Contains(Languages, language) {
		return nil, wikiextract.Errorf(wikiextract.EINVALID, "no stemmer for language %q", language)
	}
	return &Stemmer{language: language}, nil
}

// Language returns the stemmer's language.
func (s *Stemmer) Language() string {
	return s.language
}

// Stem returns the stem of word. Stop words are stemmed too.
func (s *Stemmer) Stem(word string) string {
	stem, err := snowball.Stem(word, s.language, true)
	if err != nil || stem == "" {
		return word
	}
	return stem
}
