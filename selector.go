package wikiextract

import "strings"

// QueryKind identifies the language a structural query is written in.
type QueryKind string

// Supported query languages.
const (
	QueryXPath QueryKind = "xpath"
	QueryCSS   QueryKind = "css"
)

// Selector maps a logical field name to a structural query.
type Selector struct {
	Field string
	Query string
	Kind  QueryKind
}

// XPath returns a Selector for an XPath query.
func XPath(field, query string) Selector {
	return Selector{Field: field, Query: query, Kind: QueryXPath}
}

// CSS returns a Selector for a CSS selector query.
func CSS(field, query string) Selector {
	return Selector{Field: field, Query: query, Kind: QueryCSS}
}

// SelectorSet is the fixed set of selectors applied to one content type.
// Order is the order fields are evaluated in; it carries no other meaning.
type SelectorSet []Selector

// TitleField is the field whose first value names the persisted record.
const TitleField = "title"

// WikiContent is the selector set for content pages of the target wiki.
var WikiContent = SelectorSet{
	XPath(TitleField, "//span[@class='mw-page-title-main']"),
	XPath("toc", "//div[@id='content']//div[@id='toc']"),
	XPath("h1", "//div[@id='content']//h1"),
	XPath("h2", "//div[@id='content']//h2"),
	XPath("h3", "//div[@id='content']//h3"),
	XPath("content", "//div[@id='content']"),
}

// Index page queries. They locate further seed pages and content page links
// on the wiki's "all pages" listing and are not used by the extraction
// pipeline.
var (
	NextPageQuery     = XPath("next", "//div[@class='mw-allpages-nav']//a[@href]")
	ContentLinksQuery = XPath("links", "//div[@class='mw-allpages-body']//a[@href]")
)

// Fields returns the field names in evaluation order.
func (s SelectorSet) Fields() []string {
	fields := make([]string, len(s))
	for i, sel := range s {
		fields[i] = sel.Field
	}
	return fields
}

// Validate returns an error if the set contains empty or duplicate field
// names, empty queries or unknown query kinds.
func (s SelectorSet) Validate() error {
	if len(s) == 0 {
		return Errorf(EINVALID, "selector set is empty")
	}
	seen := make(map[string]bool, len(s))
	for _, sel := range s {
		if strings.TrimSpace(sel.Field) == "" {
			return Errorf(EINVALID, "selector field name required")
		}
		if seen[sel.Field] {
			return Errorf(EINVALID, "duplicate selector field %q", sel.Field)
		}
		seen[sel.Field] = true
		if strings.TrimSpace(sel.Query) == "" {
			return Errorf(EINVALID, "selector %q has an empty query", sel.Field)
		}
		switch sel.Kind {
		case QueryXPath, QueryCSS:
		default:
			return Errorf(EINVALID, "selector %q has unknown query kind %q", sel.Field, sel.Kind)
		}
	}
	return nil
}
