package indexer

import "context"

// PageStore persists per-page term counts.
type PageStore interface {
	IndexPage(ctx context.Context, url string, counts map[string]int) error
	IsIndexed(ctx context.Context, url string) (bool, error)
}

// Fetcher downloads a page body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
