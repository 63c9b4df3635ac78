package wikisearch

import (
	"context"
	"io"

	"github.com/kailas-cloud/wikisearch/internal/domain/search"
	healthuc "github.com/kailas-cloud/wikisearch/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

// --- queryUseCase mock ---

type mockQueryUC struct {
	termFn func(ctx context.Context, term string) (search.Result, error)
	rankFn func(ctx context.Context, e queryuc.Expr, order queryuc.Order) ([]search.Entry, error)
}

func (m *mockQueryUC) Term(ctx context.Context, term string) (search.Result, error) {
	return m.termFn(ctx, term)
}

func (m *mockQueryUC) Rank(ctx context.Context, e queryuc.Expr, order queryuc.Order) ([]search.Entry, error) {
	return m.rankFn(ctx, e, order)
}

// --- indexerUseCase mock ---

type mockIndexerUC struct {
	indexURLFn  func(ctx context.Context, url string, force bool) (indexeruc.Outcome, error)
	indexHTMLFn func(ctx context.Context, url string, page io.Reader) (indexeruc.Outcome, error)
}

func (m *mockIndexerUC) IndexURL(ctx context.Context, url string, force bool) (indexeruc.Outcome, error) {
	return m.indexURLFn(ctx, url, force)
}

func (m *mockIndexerUC) IndexHTML(ctx context.Context, url string, page io.Reader) (indexeruc.Outcome, error) {
	return m.indexHTMLFn(ctx, url, page)
}

// --- pageUseCase mock ---

type mockPageUC struct {
	deleteFn func(ctx context.Context, url string) error
	countsFn func(ctx context.Context, url string) (map[string]int, error)
}

func (m *mockPageUC) DeletePage(ctx context.Context, url string) error {
	return m.deleteFn(ctx, url)
}

func (m *mockPageUC) TermCounts(ctx context.Context, url string) (map[string]int, error) {
	return m.countsFn(ctx, url)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

func newMockClient() (*Client, *mockQueryUC, *mockIndexerUC, *mockPageUC) {
	q := &mockQueryUC{}
	ix := &mockIndexerUC{}
	pg := &mockPageUC{}
	return &Client{
		querySvc:   q,
		indexerSvc: ix,
		pages:      pg,
		healthSvc:  &mockHealthUC{report: healthuc.Report{Status: healthuc.Healthy}},
	}, q, ix, pg
}
