package wikisearch

import (
	"github.com/kailas-cloud/wikisearch/internal/domain/search"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

// Query is a boolean query tree. Build one with Term, And, Or and Minus.
type Query struct {
	expr queryuc.Expr
}

// Term matches the documents containing t. Terms are case-insensitive.
func Term(t string) Query { return Query{expr: queryuc.Term(t)} }

// And keeps documents relevant to both sides; relevance is the sum.
func And(l, r Query) Query { return Query{expr: queryuc.And(l.expr, r.expr)} }

// Or keeps documents relevant to either side; shared documents sum.
func Or(l, r Query) Query { return Query{expr: queryuc.Or(l.expr, r.expr)} }

// Minus keeps documents of l that r does not mention, with l's relevance.
func Minus(l, r Query) Query { return Query{expr: queryuc.Minus(l.expr, r.expr)} }

// String renders q fully parenthesised.
func (q Query) String() string { return q.expr.String() }

// Order is the ranking direction of search hits.
type Order string

const (
	// Descending ranks the most relevant document first.
	Descending Order = Order(queryuc.Desc)
	// Ascending ranks the least relevant document first.
	Ascending Order = Order(queryuc.Asc)
)

// Hit is one ranked document.
type Hit struct {
	URL       string
	Relevance int
}

// IndexResult describes what an indexing call did with a page.
type IndexResult struct {
	URL     string
	Terms   int  // distinct terms stored
	Skipped bool // page was already indexed
}

func hitsFromEntries(entries []search.Entry) []Hit {
	hits := make([]Hit, len(entries))
	for i, e := range entries {
		hits[i] = Hit{URL: e.Doc, Relevance: e.Score}
	}
	return hits
}
