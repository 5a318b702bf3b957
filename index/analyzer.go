package index

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/fwojciec/wikiextract"
)

// Tokens matching one of these patterns are indexed as written.
var (
	wildcardRe = regexp.MustCompile(`^(?:\w+\*|\*\w+|\w+\*\w+)$`)
	urlRe      = regexp.MustCompile(`^(?:https?|ftp)://[^\s/$.?#].[^\s]*$`)
	dateRe     = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.(?:\d{4})?$`)
	timeRe     = regexp.MustCompile(`^\d{1,2}:\d{1,2}$`)
)

// Analyzer turns text into index terms.
//
// Text is lowercased and split on whitespace. Wildcard words, URLs, dates
// and times are kept verbatim. Other tokens lose their punctuation and
// symbols, and a token mixing letters and digits is split where one turns
// into the other ("1a2b" gives "1", "a", "2", "b"). Duplicates are kept.
type Analyzer struct {
	// Stemmer, if set, reduces every word token to its stem.
	Stemmer wikiextract.Stemmer
}

// Terms returns the terms of text in order.
func (a *Analyzer) Terms(text string) []string {
	var terms []string
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if verbatim(tok) {
			terms = append(terms, tok)
			continue
		}
		tok = strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, tok)
		for _, part := range splitDigits(tok) {
			if a.Stemmer != nil {
				part = a.Stemmer.Stem(part)
			}
			terms = append(terms, part)
		}
	}
	return terms
}

// TermsOf returns the terms of every value in order.
func (a *Analyzer) TermsOf(values []string) []string {
	var terms []string
	for _, v := range values {
		terms = append(terms, a.Terms(v)...)
	}
	return terms
}

func verbatim(tok string) bool {
	return wildcardRe.MatchString(tok) || urlRe.MatchString(tok) ||
		dateRe.MatchString(tok) || timeRe.MatchString(tok)
}

// splitDigits splits tok wherever a letter meets a digit.
func splitDigits(tok string) []string {
	if tok == "" {
		return nil
	}
	var parts []string
	start := 0
	var prev rune
	for i, r := range tok {
		if i > 0 && (unicode.IsLetter(prev) && unicode.IsDigit(r) || unicode.IsDigit(prev) && unicode.IsLetter(r)) {
			parts = append(parts, tok[start:i])
			start = i
		}
		prev = r
	}
	return append(parts, tok[start:])
}
