package wikisearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/kailas-cloud/wikisearch/internal/domain/search"
	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

func TestSearch_ConvertsEntries(t *testing.T) {
	c, q, _, _ := newMockClient()
	q.rankFn = func(_ context.Context, e queryuc.Expr, order queryuc.Order) ([]search.Entry, error) {
		if order != queryuc.Desc {
			t.Errorf("order = %q, want desc", order)
		}
		if e.Op() != queryuc.OpMinus {
			t.Errorf("op = %q", e.Op())
		}
		return []search.Entry{{Doc: "A", Score: 3}}, nil
	}

	hits, err := c.Search(context.Background(), Minus(Term("java"), Term("programming")), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0] != (Hit{URL: "A", Relevance: 3}) {
		t.Errorf("hits = %+v", hits)
	}
}

func TestSearch_InvalidOrder(t *testing.T) {
	c, _, _, _ := newMockClient()
	_, err := c.Search(context.Background(), Term("java"), "sideways")
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestSearch_LookupError(t *testing.T) {
	c, q, _, _ := newMockClient()
	q.rankFn = func(context.Context, queryuc.Expr, queryuc.Order) ([]search.Entry, error) {
		return nil, &search.LookupError{Term: "java", Err: errors.New("timeout")}
	}

	_, err := c.Search(context.Background(), Term("java"), Ascending)
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	c, q, _, _ := newMockClient()
	q.termFn = func(_ context.Context, term string) (search.Result, error) {
		return search.New(map[string]int{"A": 2}), nil
	}

	counts, err := c.Lookup(context.Background(), "java")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["A"] != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestIndexURL(t *testing.T) {
	c, _, ix, _ := newMockClient()
	ix.indexURLFn = func(_ context.Context, url string, force bool) (indexeruc.Outcome, error) {
		if !force {
			t.Error("force not passed through")
		}
		return indexeruc.Outcome{URL: url, Terms: 12}, nil
	}

	res, err := c.IndexURL(context.Background(), "https://wiki/Java", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != (IndexResult{URL: "https://wiki/Java", Terms: 12}) {
		t.Errorf("result = %+v", res)
	}
}

func TestIndexURL_Error(t *testing.T) {
	c, _, ix, _ := newMockClient()
	ix.indexURLFn = func(context.Context, string, bool) (indexeruc.Outcome, error) {
		return indexeruc.Outcome{}, fmt.Errorf("fetch: %w", ErrPageFetch)
	}

	_, err := c.IndexURL(context.Background(), "https://wiki/Java", false)
	if !errors.Is(err, ErrPageFetch) {
		t.Fatalf("expected ErrPageFetch, got %v", err)
	}
}

func TestIndexHTML(t *testing.T) {
	c, _, ix, _ := newMockClient()
	ix.indexHTMLFn = func(_ context.Context, url string, page io.Reader) (indexeruc.Outcome, error) {
		b, _ := io.ReadAll(page)
		return indexeruc.Outcome{URL: url, Terms: len(strings.Fields(string(b)))}, nil
	}

	res, err := c.IndexHTML(context.Background(), "u1", strings.NewReader("a b c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Terms != 3 {
		t.Errorf("terms = %d", res.Terms)
	}
}

func TestPages(t *testing.T) {
	c, _, _, pg := newMockClient()
	deleted := ""
	pg.deleteFn = func(_ context.Context, url string) error {
		deleted = url
		return nil
	}
	pg.countsFn = func(context.Context, string) (map[string]int, error) {
		return nil, errors.New("down")
	}

	if err := c.DeletePage(context.Background(), "u1"); err != nil || deleted != "u1" {
		t.Fatalf("DeletePage: %v, deleted %q", err, deleted)
	}
	if _, err := c.TermCounts(context.Background(), "u1"); err == nil {
		t.Fatal("expected TermCounts error")
	}
}

func TestHealth(t *testing.T) {
	c, _, _, _ := newMockClient()
	if got := c.Health(context.Background()).Status; got != "ok" {
		t.Errorf("status = %q", got)
	}
}

func TestQuery_String(t *testing.T) {
	q := Or(Term("java"), And(Term("go"), Term("rust")))
	if q.String() != `("java" or ("go" and "rust"))` {
		t.Errorf("String() = %s", q.String())
	}
}
