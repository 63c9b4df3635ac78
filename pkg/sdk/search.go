package wikisearch

import (
	"context"
	"fmt"
	"time"

	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

// Search evaluates q and returns the matching pages ranked by order.
// An empty order means Descending.
func (c *Client) Search(ctx context.Context, q Query, order Order) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "query", q.String(), "hits", len(hits)) }()

	o, err := queryuc.ParseOrder(string(order))
	if err != nil {
		return nil, err
	}

	entries, err := c.querySvc.Rank(ctx, q.expr, o)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", q, err)
	}
	c.obs.observeHits(len(entries))
	return hitsFromEntries(entries), nil
}

// Lookup returns url -> relevance for a single term, unranked.
func (c *Client) Lookup(ctx context.Context, term string) (counts map[string]int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("lookup", start, err, "term", term) }()

	res, err := c.querySvc.Term(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}
	return res.Scores(), nil
}
