package search

import (
	"cmp"
	"slices"
)

// Entry is a single ranked (document, score) pair.
type Entry struct {
	Doc   string `json:"doc"`
	Score int    `json:"score"`
}

// Comparator orders two entries: negative when a sorts before b, positive when
// after, zero when they tie.
type Comparator func(a, b Entry) int

// Ascending orders entries by score, lowest first.
func Ascending(a, b Entry) int { return cmp.Compare(a.Score, b.Score) }

// Descending orders entries by score, highest first.
func Descending(a, b Entry) int { return cmp.Compare(b.Score, a.Score) }

// ThenByDoc breaks ties left by c with the document ID.
func ThenByDoc(c Comparator) Comparator {
	return func(a, b Entry) int {
		if n := c(a, b); n != 0 {
			return n
		}
		return cmp.Compare(a.Doc, b.Doc)
	}
}

// Sort returns every entry of the result ordered by c. A nil comparator means
// Ascending. The sort is stable and the returned slice is freshly allocated.
func (r Result) Sort(c Comparator) []Entry {
	if c == nil {
		c = Ascending
	}
	entries := make([]Entry, 0, len(r.scores))
	for doc, score := range r.scores {
		entries = append(entries, Entry{Doc: doc, Score: score})
	}
	slices.SortStableFunc(entries, c)
	return entries
}
