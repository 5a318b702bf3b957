// Package index provides ranked and boolean search over extracted wiki
// records.
//
// Each record is indexed twice: its title alone, and its body (every other
// field). Both indexes weight terms by TF-IDF and are rebuilt from the
// whole collection whenever a record is added, updated or removed, so
// document frequencies always reflect the current collection.
package index

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/fwojciec/wikiextract"
)

// TitleWeight scales the title similarity when searching FieldAll.
const TitleWeight = 1.5

// Field selects which index a query is matched against.
type Field string

const (
	FieldAll     Field = "all"
	FieldTitle   Field = "title"
	FieldContent Field = "content"
)

// Doc is an indexed record.
type Doc struct {
	ID     int
	Title  string
	Record wikiextract.Result
}

// Hit is a ranked search result.
type Hit struct {
	Doc   Doc
	Score float64
}

// Index is an in-memory search index over records.
// Index is safe for concurrent use.
type Index struct {
	analyzer *Analyzer

	mu     sync.RWMutex
	docs   map[int]*Doc
	terms  map[int]docTerms
	nextID int
	body   *weights
	title  *weights
}

// docTerms holds the analyzed terms of one record.
type docTerms struct {
	title []string
	body  []string
}

// posting is the weight of a term in one document.
type posting struct {
	id     int
	weight float64
}

// weights is a TF-IDF index over one part of every document.
type weights struct {
	idf      map[string]float64
	postings map[string][]posting // sorted by id
	norms    map[int]float64
}

// New returns an empty index that analyzes text with a.
func New(a *Analyzer) *Index {
	if a == nil {
		a = &Analyzer{}
	}
	ix := &Index{
		analyzer: a,
		docs:     make(map[int]*Doc),
		terms:    make(map[int]docTerms),
	}
	ix.rebuild()
	return ix
}

// Add indexes records and returns their IDs. IDs are assigned in order and
// never reused. Returns ENOTITLE, and indexes nothing, if any record has no
// usable title.
func (ix *Index) Add(records ...wikiextract.Result) ([]int, error) {
	docs := make([]*Doc, 0, len(records))
	for _, rec := range records {
		doc, err := newDoc(rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ids := make([]int, 0, len(docs))
	for _, doc := range docs {
		doc.ID = ix.nextID
		ix.nextID++
		ix.put(doc)
		ids = append(ids, doc.ID)
	}
	ix.rebuild()
	return ids, nil
}

// Update replaces the record indexed under id.
// Returns ENOTFOUND if id is not indexed.
func (ix *Index) Update(id int, rec wikiextract.Result) error {
	doc, err := newDoc(rec)
	if err != nil {
		return err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.docs[id]; !ok {
		return wikiextract.Errorf(wikiextract.ENOTFOUND, "document %d not found", id)
	}
	doc.ID = id
	ix.put(doc)
	ix.rebuild()
	return nil
}

// Remove drops the record indexed under id.
// Returns ENOTFOUND if id is not indexed.
func (ix *Index) Remove(id int) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.docs[id]; !ok {
		return wikiextract.Errorf(wikiextract.ENOTFOUND, "document %d not found", id)
	}
	delete(ix.docs, id)
	delete(ix.terms, id)
	ix.rebuild()
	return nil
}

// Doc returns the record indexed under id.
// Returns ENOTFOUND if id is not indexed.
func (ix *Index) Doc(id int) (Doc, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	doc, ok := ix.docs[id]
	if !ok {
		return Doc{}, wikiextract.Errorf(wikiextract.ENOTFOUND, "document %d not found", id)
	}
	return *doc, nil
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Search ranks records by cosine similarity to query and returns at most k
// hits, best first. Ties are broken by ID. Records that share no term with
// the query are not returned. A non-positive k returns every hit.
//
// With FieldAll a record scores its body similarity plus TitleWeight times
// its title similarity.
func (ix *Index) Search(query string, k int, field Field) []Hit {
	tf := termFrequencies(ix.analyzer.Terms(query))

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	scores := make(map[int]float64)
	if field != FieldTitle {
		ix.body.cosine(tf, 1, scores)
	}
	if field != FieldContent {
		w := 1.0
		if field == FieldAll {
			w = TitleWeight
		}
		ix.title.cosine(tf, w, scores)
	}

	hits := make([]Hit, 0, len(scores))
	for id, score := range scores {
		if score > 0 {
			hits = append(hits, Hit{Doc: *ix.docs[id], Score: score})
		}
	}
	slices.SortFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Doc.ID, b.Doc.ID)
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Boolean returns the records matching a boolean query, in ID order.
// See ParseBoolean for the query syntax. Returns EINVALID for a malformed
// query.
func (ix *Index) Boolean(query string, field Field) ([]Doc, error) {
	expr, err := ParseBoolean(query, ix.analyzer)
	if err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids, err := expr.eval(ix, field)
	if err != nil {
		return nil, err
	}
	docs := make([]Doc, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, *ix.docs[id])
	}
	return docs, nil
}

// matching returns the sorted IDs of records containing term in field.
func (ix *Index) matching(term string, field Field) []int {
	var ids []int
	if field != FieldTitle {
		ids = ix.body.ids(term)
	}
	if field != FieldContent {
		ids = union(ids, ix.title.ids(term))
	}
	return ids
}

// all returns every indexed ID, sorted.
func (ix *Index) all() []int {
	ids := make([]int, 0, len(ix.docs))
	for id := range ix.docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func newDoc(rec wikiextract.Result) (*Doc, error) {
	title, err := rec.Title()
	if err != nil {
		return nil, err
	}
	return &Doc{Title: title, Record: rec}, nil
}

func (ix *Index) put(doc *Doc) {
	var body []string
	for _, field := range slices.Sorted(maps.Keys(doc.Record)) {
		if field != wikiextract.TitleField {
			body = append(body, ix.analyzer.TermsOf(doc.Record[field])...)
		}
	}
	ix.docs[doc.ID] = doc
	ix.terms[doc.ID] = docTerms{
		title: ix.analyzer.Terms(doc.Title),
		body:  body,
	}
}

func (ix *Index) rebuild() {
	ids := ix.all()
	ix.body = buildWeights(ids, func(id int) []string { return ix.terms[id].body })
	ix.title = buildWeights(ids, func(id int) []string { return ix.terms[id].title })
}

// buildWeights computes TF-IDF weights: tf = 1 + log10(count) and
// idf = log10(N / df).
func buildWeights(ids []int, terms func(int) []string) *weights {
	w := &weights{
		idf:      make(map[string]float64),
		postings: make(map[string][]posting),
		norms:    make(map[int]float64, len(ids)),
	}

	tfs := make(map[int]map[string]float64, len(ids))
	for _, id := range ids {
		tf := termFrequencies(terms(id))
		for term := range tf {
			w.idf[term]++
		}
		tfs[id] = tf
	}
	n := float64(len(ids))
	for term, df := range w.idf {
		w.idf[term] = math.Log10(n / df)
	}

	for _, id := range ids {
		var norm float64
		for term, tf := range tfs[id] {
			v := tf * w.idf[term]
			w.postings[term] = append(w.postings[term], posting{id: id, weight: v})
			norm += v * v
		}
		w.norms[id] = math.Sqrt(norm)
	}
	return w
}

// cosine adds scale times the cosine similarity between the query and
// every document sharing a term with it to scores.
func (w *weights) cosine(tf map[string]float64, scale float64, scores map[int]float64) {
	var qnorm float64
	dots := make(map[int]float64)
	for term, f := range tf {
		q := f * w.idf[term]
		qnorm += q * q
		for _, p := range w.postings[term] {
			dots[p.id] += q * p.weight
		}
	}
	qnorm = math.Sqrt(qnorm)
	for id, dot := range dots {
		if d := qnorm * w.norms[id]; d > 0 {
			scores[id] += scale * dot / d
		}
	}
}

func (w *weights) ids(term string) []int {
	ps := w.postings[term]
	ids := make([]int, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.id)
	}
	return ids
}

// termFrequencies returns 1 + log10(count) for every distinct term.
func termFrequencies(terms []string) map[string]float64 {
	counts := make(map[string]int)
	for _, t := range terms {
		counts[t]++
	}
	tf := make(map[string]float64, len(counts))
	for t, c := range counts {
		tf[t] = 1 + math.Log10(float64(c))
	}
	return tf
}
