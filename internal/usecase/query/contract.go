package query

import "context"

// Index resolves a term into its document -> count mapping.
type Index interface {
	Counts(ctx context.Context, term string) (map[string]int, error)
}
