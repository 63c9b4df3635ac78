package db

import (
	"context"
	"time"
)

// Store is the database facade the index is built on.
type Store interface {
	Pinger
	SetStore
	HashStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetStore provides unordered set operations.
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SAddMulti(ctx context.Context, items []SetAddItem) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// SetAddItem holds a single key+members pair for pipelined SADD.
type SetAddItem struct {
	Key     string
	Members []string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetMulti(ctx context.Context, items []HashGetItem) ([]HashGetResult, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// HashGetItem names one hash field to fetch in a pipelined HGET.
type HashGetItem struct {
	Key   string
	Field string
}

// HashGetResult is the answer to a HashGetItem. Found is false when the key or
// the field does not exist.
type HashGetResult struct {
	Value string
	Found bool
}
