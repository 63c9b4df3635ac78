package index

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/wikisearch/internal/db"
	"github.com/kailas-cloud/wikisearch/internal/domain/search"
)

// Compile-time check: Repo is the index collaborator of the query algebra.
var _ search.Index = (*Repo)(nil)

// store is the consumer interface for index operations (ISP).
type store interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SAddMulti(ctx context.Context, items []db.SetAddItem) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetMulti(ctx context.Context, items []db.HashGetItem) ([]db.HashGetResult, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// emptyPageField is the counter field of a page with no terms. No term is
// ever empty, so it cannot collide.
const emptyPageField = ""

// Repo is an inverted index laid out as
//
//	<prefix>URLSet:<term>     set of page URLs containing term
//	<prefix>TermCounter:<url> hash of term -> occurrences on the page
type Repo struct {
	store  store
	prefix string
}

// New creates an index repository. Every key is prefixed with prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Counts returns url -> occurrences of term. An unindexed term yields an
// empty map. Pages whose counter lacks the term, or holds zero, are skipped.
func (r *Repo) Counts(ctx context.Context, term string) (map[string]int, error) {
	urls, err := r.store.SMembers(ctx, r.urlSetKey(term))
	if err != nil {
		return nil, fmt.Errorf("urls for %q: %w", term, err)
	}

	out := make(map[string]int, len(urls))
	if len(urls) == 0 {
		return out, nil
	}

	items := make([]db.HashGetItem, len(urls))
	for i, u := range urls {
		items[i] = db.HashGetItem{Key: r.termCounterKey(u), Field: term}
	}

	values, err := r.store.HGetMulti(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("counts for %q: %w", term, err)
	}

	for i, v := range values {
		if !v.Found {
			continue
		}
		n, err := strconv.Atoi(v.Value)
		if err != nil {
			return nil, fmt.Errorf("count of %q on %s: %w", term, urls[i], err)
		}
		if n > 0 {
			out[urls[i]] = n
		}
	}
	return out, nil
}

// IndexPage replaces the stored term counts of url and registers url under
// every term it contains. The counter hash is written last and marks the page
// as indexed, so a failed write leaves the page unindexed rather than half
// visible. A page without terms still gets a counter holding only emptyPageField.
func (r *Repo) IndexPage(ctx context.Context, url string, counts map[string]int) error {
	if err := r.DeletePage(ctx, url); err != nil {
		return err
	}

	fields := make(map[string]string, len(counts))
	sets := make([]db.SetAddItem, 0, len(counts))
	for term, n := range counts {
		if n <= 0 || term == emptyPageField {
			continue
		}
		fields[term] = strconv.Itoa(n)
		sets = append(sets, db.SetAddItem{Key: r.urlSetKey(term), Members: []string{url}})
	}
	if len(fields) == 0 {
		fields[emptyPageField] = "0"
	}

	if err := r.store.SAddMulti(ctx, sets); err != nil {
		return fmt.Errorf("register %s: %w", url, err)
	}
	if err := r.store.HSet(ctx, r.termCounterKey(url), fields); err != nil {
		return fmt.Errorf("store counts of %s: %w", url, err)
	}
	return nil
}

// DeletePage removes url from the index. Deleting an unknown page is a no-op.
// The counter goes first; set entries left behind by a failure are ignored by
// Counts because their counter is gone.
func (r *Repo) DeletePage(ctx context.Context, url string) error {
	counts, err := r.TermCounts(ctx, url)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.termCounterKey(url)); err != nil {
		return fmt.Errorf("delete counts of %s: %w", url, err)
	}
	for term := range counts {
		if err := r.store.SRem(ctx, r.urlSetKey(term), url); err != nil {
			return fmt.Errorf("unregister %s from %q: %w", url, term, err)
		}
	}
	return nil
}

// IsIndexed reports whether url has a term counter.
func (r *Repo) IsIndexed(ctx context.Context, url string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.termCounterKey(url))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", url, err)
	}
	return ok, nil
}

// TermCounts returns the stored term -> count map of url.
func (r *Repo) TermCounts(ctx context.Context, url string) (map[string]int, error) {
	raw, err := r.store.HGetAll(ctx, r.termCounterKey(url))
	if err != nil {
		return nil, fmt.Errorf("counts of %s: %w", url, err)
	}
	out := make(map[string]int, len(raw))
	for term, v := range raw {
		if term == emptyPageField {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("count of %q on %s: %w", term, url, err)
		}
		out[term] = n
	}
	return out, nil
}

func (r *Repo) urlSetKey(term string) string {
	return r.prefix + "URLSet:" + term
}

func (r *Repo) termCounterKey(url string) string {
	return r.prefix + "TermCounter:" + url
}
