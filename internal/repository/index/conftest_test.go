package index

import (
	"context"
	"testing"

	"github.com/kailas-cloud/wikisearch/internal/db"
	"github.com/kailas-cloud/wikisearch/internal/db/sqlite"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	saddFn      func(ctx context.Context, key string, members ...string) error
	saddMultiFn func(ctx context.Context, items []db.SetAddItem) error
	sremFn      func(ctx context.Context, key string, members ...string) error
	smembersFn  func(ctx context.Context, key string) ([]string, error)
	hsetFn      func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn   func(ctx context.Context, key string) (map[string]string, error)
	hgetMultiFn func(ctx context.Context, items []db.HashGetItem) ([]db.HashGetResult, error)
	delFn       func(ctx context.Context, key string) error
	existsFn    func(ctx context.Context, key string) (bool, error)
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SAddMulti(ctx context.Context, items []db.SetAddItem) error {
	if m.saddMultiFn != nil {
		return m.saddMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	if m.sremFn != nil {
		return m.sremFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetMulti(ctx context.Context, items []db.HashGetItem) ([]db.HashGetResult, error) {
	if m.hgetMultiFn != nil {
		return m.hgetMultiFn(ctx, items)
	}
	return make([]db.HashGetResult, len(items)), nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "ws:"), ms
}

// newSQLiteRepo backs the repo with a real in-memory store.
func newSQLiteRepo(t *testing.T) *Repo {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	if err != nil {
		t.Fatalf("sqlite.NewStore: %v", err)
	}
	t.Cleanup(s.Close)
	return New(s, "ws:")
}
