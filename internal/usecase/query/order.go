package query

import (
	"fmt"

	"github.com/kailas-cloud/wikisearch/internal/domain"
	"github.com/kailas-cloud/wikisearch/internal/domain/search"
)

// Order selects the ranking direction.
type Order string

const (
	// Asc ranks the least relevant document first.
	Asc Order = "asc"
	// Desc ranks the most relevant document first.
	Desc Order = "desc"
)

// ParseOrder parses "asc" or "desc". An empty string means Desc.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "":
		return Desc, nil
	case Asc, Desc:
		return Order(s), nil
	default:
		return "", fmt.Errorf("%w: unknown order %q", domain.ErrInvalidQuery, s)
	}
}

// Comparator returns the ranking strategy for o. Ties are broken by document
// ID so repeated queries rank identically.
func (o Order) Comparator() search.Comparator {
	if o == Asc {
		return search.ThenByDoc(search.Ascending)
	}
	return search.ThenByDoc(search.Descending)
}
