// Package goquery implements wikiextract.Document over static HTML.
// CSS selectors are evaluated with goquery and cascadia, XPath queries with
// htmlquery. Both work on the same parsed node tree.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/wikiextract"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Compile-time interface verification.
var _ wikiextract.Document = (*Document)(nil)

// Document is a parsed static HTML page. Scripts are not executed.
// Document is safe for concurrent reads.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses HTML into a Document.
func NewDocument(src string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EINVALID, err, "failed to parse HTML")
	}
	return &Document{doc: doc}, nil
}

// Texts evaluates sel and returns the text of every matched node in
// document order.
func (d *Document) Texts(ctx context.Context, sel wikiextract.Selector) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, wikiextract.Wrap(wikiextract.ESELECTOR, err, "evaluating %q", sel.Field)
	}

	var nodes []*html.Node
	switch sel.Kind {
	case wikiextract.QueryCSS:
		m, err := cascadia.Compile(sel.Query)
		if err != nil {
			return nil, wikiextract.Wrap(wikiextract.ESELECTOR, err, "invalid css selector %q", sel.Query)
		}
		nodes = d.doc.FindMatcher(m).Nodes
	case wikiextract.QueryXPath:
		var err error
		nodes, err = htmlquery.QueryAll(d.root(), sel.Query)
		if err != nil {
			return nil, wikiextract.Wrap(wikiextract.ESELECTOR, err, "invalid xpath %q", sel.Query)
		}
	default:
		return nil, wikiextract.Errorf(wikiextract.ESELECTOR, "unsupported query kind %q", sel.Kind)
	}

	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, InnerText(n))
	}
	return texts, nil
}

func (d *Document) root() *html.Node {
	if len(d.doc.Nodes) == 0 {
		return &html.Node{Type: html.DocumentNode}
	}
	return d.doc.Nodes[0]
}

// InnerText approximates the browser's innerText of n without a layout
// engine. Block elements start and end a line (a paragraph leaves a blank
// line), <br> is a line break, and table cells in a row are separated by
// tabs. Whitespace runs collapse to one space except inside <pre>, and
// spaces at line edges are dropped. Elements that are never rendered
// contribute nothing.
//
// A text node, or an element that is itself never rendered, yields its
// text content unchanged.
func InnerText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && nonRendered[n.DataAtom] {
		return goquery.NewDocumentFromNode(n).Text()
	}
	var w textWriter
	w.walk(n, false)
	return w.b.String()
}

// nonRendered lists elements whose contents are never shown on screen.
var nonRendered = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// blockBreaks is the number of line breaks required around an element.
var blockBreaks = map[atom.Atom]int{
	atom.P:          2,
	atom.Address:    1,
	atom.Article:    1,
	atom.Aside:      1,
	atom.Blockquote: 1,
	atom.Body:       1,
	atom.Caption:    1,
	atom.Center:     1,
	atom.Dd:         1,
	atom.Details:    1,
	atom.Dialog:     1,
	atom.Div:        1,
	atom.Dl:         1,
	atom.Dt:         1,
	atom.Fieldset:   1,
	atom.Figcaption: 1,
	atom.Figure:     1,
	atom.Footer:     1,
	atom.Form:       1,
	atom.H1:         1,
	atom.H2:         1,
	atom.H3:         1,
	atom.H4:         1,
	atom.H5:         1,
	atom.H6:         1,
	atom.Header:     1,
	atom.Hgroup:     1,
	atom.Hr:         1,
	atom.Html:       1,
	atom.Legend:     1,
	atom.Li:         1,
	atom.Main:       1,
	atom.Menu:       1,
	atom.Nav:        1,
	atom.Ol:         1,
	atom.Pre:        1,
	atom.Section:    1,
	atom.Summary:    1,
	atom.Table:      1,
	atom.Tbody:      1,
	atom.Tfoot:      1,
	atom.Thead:      1,
	atom.Tr:         1,
	atom.Ul:         1,
}

// textWriter accumulates rendered text. Line breaks and inter-word spaces
// are held back until the next visible text, so none are left at either
// end of the output.
type textWriter struct {
	b      strings.Builder
	breaks int
	space  bool
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			w.literal(n.Data)
		} else {
			w.text(n.Data)
		}
		return
	case html.ElementNode:
		if nonRendered[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			w.space = false
			w.literal("\n")
			return
		}
		if n.DataAtom == atom.Pre {
			pre = true
		}
	case html.DocumentNode:
	default:
		return
	}

	breaks := blockBreaks[n.DataAtom]
	w.lineBreak(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre)
	}
	w.lineBreak(breaks)

	if isCell(n) && nextCell(n) != nil {
		w.space = false
		w.literal("\t")
	}
}

// text writes s with whitespace runs collapsed.
func (w *textWriter) text(s string) {
	words := strings.Join(strings.Fields(s), " ")
	if words == "" {
		if s != "" {
			w.space = true
		}
		return
	}
	if isSpace(s[0]) {
		w.space = true
	}
	w.flush()
	w.b.WriteString(words)
	w.space = isSpace(s[len(s)-1])
}

// literal writes s verbatim.
func (w *textWriter) literal(s string) {
	if s == "" {
		return
	}
	w.flush()
	w.b.WriteString(s)
}

// lineBreak requires at least n line breaks before the next text.
func (w *textWriter) lineBreak(n int) {
	if n == 0 {
		return
	}
	w.breaks = max(w.breaks, n)
	w.space = false
}

func (w *textWriter) flush() {
	if w.b.Len() > 0 {
		if w.breaks > 0 {
			w.b.WriteString(strings.Repeat("\n", w.breaks))
		} else if w.space && !w.atLineStart() {
			w.b.WriteByte(' ')
		}
	}
	w.breaks = 0
	w.space = false
}

func (w *textWriter) atLineStart() bool {
	s := w.b.String()
	return s == "" || s[len(s)-1] == '\n'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

func nextCell(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if isCell(s) {
			return s
		}
	}
	return nil
}
