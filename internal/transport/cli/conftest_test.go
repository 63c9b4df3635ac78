package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wikisearch/internal/config"
	healthuc "github.com/kailas-cloud/wikisearch/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

type mockIndex struct {
	data map[string]map[string]int
	err  error
}

func (m *mockIndex) Counts(_ context.Context, term string) (map[string]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[term], nil
}

type mockPages struct {
	indexed map[string]bool
}

func (m *mockPages) IndexPage(_ context.Context, url string, _ map[string]int) error {
	m.indexed[url] = true
	return nil
}

func (m *mockPages) IsIndexed(_ context.Context, url string) (bool, error) {
	return m.indexed[url], nil
}

type mockFetcher struct {
	pages map[string]string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	body, ok := m.pages[url]
	if !ok {
		return nil, errors.New("404 not found")
	}
	return []byte(body), nil
}

type fixture struct {
	index   *mockIndex
	pages   *mockPages
	fetcher *mockFetcher
	builds  int
	env     string
}

func newFixture() *fixture {
	return &fixture{
		index: &mockIndex{data: map[string]map[string]int{
			"java":        {"A": 3, "B": 1},
			"programming": {"B": 2, "C": 5},
			"coffee":      {"A": 1, "D": 4},
		}},
		pages: &mockPages{indexed: map[string]bool{}},
		fetcher: &mockFetcher{pages: map[string]string{
			"https://wiki/Java": "<html><body><p>Java is a programming language</p></body></html>",
		}},
	}
}

func (f *fixture) build(_ context.Context, env string) (*Runtime, error) {
	f.builds++
	f.env = env
	return &Runtime{
		Config:  config.Config{},
		Logger:  zap.NewNop(),
		Query:   queryuc.New(f.index),
		Indexer: indexeruc.New(f.pages, f.fetcher),
		Health:  healthuc.New(nil),
	}, nil
}

func execute(t *testing.T, root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
