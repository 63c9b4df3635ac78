package wikisearch

import (
	"context"
	"fmt"
	"io"
	"time"

	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
)

// IndexURL downloads url and stores its term counts. Pages already in the
// index are skipped unless force is set.
func (c *Client) IndexURL(ctx context.Context, url string, force bool) (res IndexResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("index_url", start, err, "url", url) }()

	out, err := c.indexerSvc.IndexURL(ctx, url, force)
	if err != nil {
		return IndexResult{}, fmt.Errorf("index %s: %w", url, err)
	}
	return indexResultFromOutcome(out), nil
}

// IndexHTML stores the term counts of an already downloaded page under url,
// replacing any previous counts.
func (c *Client) IndexHTML(ctx context.Context, url string, page io.Reader) (res IndexResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("index_html", start, err, "url", url) }()

	out, err := c.indexerSvc.IndexHTML(ctx, url, page)
	if err != nil {
		return IndexResult{}, fmt.Errorf("index %s: %w", url, err)
	}
	return indexResultFromOutcome(out), nil
}

// TermCounts returns the stored term -> count map of url. An unindexed page
// yields an empty map.
func (c *Client) TermCounts(ctx context.Context, url string) (counts map[string]int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("term_counts", start, err, "url", url) }()

	counts, err = c.pages.TermCounts(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("term counts of %s: %w", url, err)
	}
	return counts, nil
}

// DeletePage removes url from the index.
func (c *Client) DeletePage(ctx context.Context, url string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete_page", start, err, "url", url) }()

	if err = c.pages.DeletePage(ctx, url); err != nil {
		return fmt.Errorf("delete %s: %w", url, err)
	}
	return nil
}

func indexResultFromOutcome(o indexeruc.Outcome) IndexResult {
	return IndexResult{URL: o.URL, Terms: o.Terms, Skipped: o.Skipped}
}
