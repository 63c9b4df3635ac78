package chi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	healthuc "github.com/kailas-cloud/wikisearch/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

type mockIndex struct {
	countsFn func(ctx context.Context, term string) (map[string]int, error)
}

func (m *mockIndex) Counts(ctx context.Context, term string) (map[string]int, error) {
	return m.countsFn(ctx, term)
}

// scenarioIndex serves the java/programming fixture.
func scenarioIndex() *mockIndex {
	data := map[string]map[string]int{
		"java":        {"A": 3, "B": 1},
		"programming": {"B": 2, "C": 5},
	}
	return &mockIndex{countsFn: func(_ context.Context, term string) (map[string]int, error) {
		return data[term], nil
	}}
}

type mockPages struct {
	indexed map[string]bool
	stored  map[string]map[string]int
}

func newMockPages() *mockPages {
	return &mockPages{indexed: map[string]bool{}, stored: map[string]map[string]int{}}
}

func (m *mockPages) IndexPage(_ context.Context, url string, counts map[string]int) error {
	m.stored[url] = counts
	m.indexed[url] = true
	return nil
}

func (m *mockPages) IsIndexed(_ context.Context, url string) (bool, error) {
	return m.indexed[url], nil
}

type mockFetcher struct {
	fetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return m.fetchFn(ctx, url)
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type testDeps struct {
	index   queryuc.Index
	pages   *mockPages
	fetcher *mockFetcher
	pinger  *mockPinger
	apiKeys []string
}

func defaultDeps() testDeps {
	return testDeps{
		index: scenarioIndex(),
		pages: newMockPages(),
		fetcher: &mockFetcher{fetchFn: func(context.Context, string) ([]byte, error) {
			return []byte("<html><body><p>Java programming in Java</p></body></html>"), nil
		}},
		pinger: &mockPinger{},
	}
}

func newTestHandler(d testDeps) http.Handler {
	srv := NewServer(
		queryuc.New(d.index),
		indexeruc.New(d.pages, d.fetcher),
		healthuc.New(map[string]healthuc.Pinger{"index": d.pinger}),
		zap.NewNop(),
	)
	return NewRouter(srv, zap.NewNop(), d.apiKeys)
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
