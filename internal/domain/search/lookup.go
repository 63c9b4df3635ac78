package search

import (
	"context"
	"errors"
	"fmt"
)

// ErrLookup signals that the index could not resolve a term.
var ErrLookup = errors.New("term lookup failed")

// Index resolves a term into its document -> count mapping. An unindexed term
// yields an empty map and a nil error.
type Index interface {
	Counts(ctx context.Context, term string) (map[string]int, error)
}

// LookupError wraps a failure of the Index for a given term.
type LookupError struct {
	Term string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: term %q: %v", ErrLookup.Error(), e.Term, e.Err)
}

// Unwrap returns the underlying index error.
func (e *LookupError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLookup) hold for every LookupError.
func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// Search builds the leaf result for term from idx.
func Search(ctx context.Context, term string, idx Index) (Result, error) {
	counts, err := idx.Counts(ctx, term)
	if err != nil {
		return Result{}, &LookupError{Term: term, Err: err}
	}
	if counts == nil {
		counts = map[string]int{}
	}
	return New(counts), nil
}
