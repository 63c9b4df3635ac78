package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed query expression.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidURL signals a page URL that cannot be fetched or indexed.
	ErrInvalidURL = errors.New("invalid url")
	// ErrPageFetch signals a failure to download a page for indexing.
	ErrPageFetch = errors.New("page fetch failed")
)

// KeyPrefix is the default prefix for every index key.
const KeyPrefix = "wikisearch:"
