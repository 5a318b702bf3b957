package wikiextract

// Stemmer reduces a lowercase word to its stem.
// Words it cannot stem are returned unchanged.
type Stemmer interface {
	Stem(word string) string
}
