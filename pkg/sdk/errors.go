package wikisearch

import (
	"github.com/kailas-cloud/wikisearch/internal/domain"
	"github.com/kailas-cloud/wikisearch/internal/domain/search"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery = domain.ErrInvalidQuery
	ErrInvalidURL   = domain.ErrInvalidURL
	ErrPageFetch    = domain.ErrPageFetch
	ErrLookup       = search.ErrLookup
)
