// Package search holds the boolean query algebra over per-term relevance results.
//
// A Result maps document IDs to relevance scores. Results combine with Or, And and
// Minus into new Results and never change after construction, so a single Result
// can be shared read-only across goroutines.
package search

import "sort"

// Result is a set of matching documents with their relevance scores.
// The zero value is the empty result.
type Result struct {
	scores map[string]int
}

// New wraps scores into a Result. The Result takes ownership of the map;
// callers must not modify it afterwards. A nil map yields the empty result.
func New(scores map[string]int) Result {
	return Result{scores: scores}
}

// Relevance returns the score of doc, or 0 when doc is not in the result.
func (r Result) Relevance(doc string) int {
	return r.scores[doc]
}

// Has reports whether doc is a key of the result, regardless of its score.
func (r Result) Has(doc string) bool {
	_, ok := r.scores[doc]
	return ok
}

// Len returns the number of documents in the result.
func (r Result) Len() int { return len(r.scores) }

// Docs returns the document IDs in lexical order.
func (r Result) Docs() []string {
	docs := make([]string, 0, len(r.scores))
	for doc := range r.scores {
		docs = append(docs, doc)
	}
	sort.Strings(docs)
	return docs
}

// Scores returns a copy of the document -> score mapping.
func (r Result) Scores() map[string]int {
	out := make(map[string]int, len(r.scores))
	for doc, score := range r.scores {
		out[doc] = score
	}
	return out
}

// Or returns the union of r and other. Documents found in both get
// TotalRelevance of the two scores.
func (r Result) Or(other Result) Result {
	out := make(map[string]int, len(r.scores)+len(other.scores))
	for doc, score := range r.scores {
		out[doc] = score
	}
	for doc := range other.scores {
		out[doc] = TotalRelevance(r.Relevance(doc), other.Relevance(doc))
	}
	return Result{scores: out}
}

// And returns the documents of r that have non-zero relevance in other,
// scored with TotalRelevance.
func (r Result) And(other Result) Result {
	out := make(map[string]int)
	for doc := range r.scores {
		rel := other.Relevance(doc)
		if rel == 0 {
			continue
		}
		out[doc] = TotalRelevance(r.Relevance(doc), rel)
	}
	return Result{scores: out}
}

// Minus returns the documents of r that are not keys of other.
// Unlike And, a key stored in other with score 0 still excludes the document.
func (r Result) Minus(other Result) Result {
	out := make(map[string]int)
	for doc, score := range r.scores {
		if other.Has(doc) {
			continue
		}
		out[doc] = score
	}
	return Result{scores: out}
}

// TotalRelevance combines the scores a document got from two results.
// It is commutative and non-decreasing in both arguments.
func TotalRelevance(rel1, rel2 int) int {
	return rel1 + rel2
}
