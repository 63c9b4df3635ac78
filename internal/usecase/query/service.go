package query

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikisearch/internal/domain"
	"github.com/kailas-cloud/wikisearch/internal/domain/search"
	logpkg "github.com/kailas-cloud/wikisearch/internal/logger"
	"github.com/kailas-cloud/wikisearch/internal/metrics"
	"github.com/kailas-cloud/wikisearch/internal/textproc"
)

// Service evaluates boolean queries against the term index.
type Service struct {
	index Index
}

// New creates a query service.
func New(index Index) *Service {
	return &Service{index: index}
}

// Term returns the leaf result of a single term.
func (s *Service) Term(ctx context.Context, term string) (search.Result, error) {
	t, err := textproc.Normalize(term)
	if err != nil {
		return search.Result{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return s.lookup(ctx, t)
}

// Evaluate folds e into a single result. Each distinct term is looked up once.
func (s *Service) Evaluate(ctx context.Context, e Expr) (search.Result, error) {
	if err := e.Validate(); err != nil {
		return search.Result{}, err
	}

	// leaves is keyed by the raw term; byTerm dedupes lookups of terms that
	// normalise the same way.
	leaves := make(map[string]search.Result)
	byTerm := make(map[string]search.Result)
	for _, raw := range e.Terms() {
		t, err := textproc.Normalize(raw)
		if err != nil {
			return search.Result{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
		}
		r, ok := byTerm[t]
		if !ok {
			if r, err = s.lookup(ctx, t); err != nil {
				return search.Result{}, err
			}
			byTerm[t] = r
		}
		leaves[raw] = r
	}

	res := fold(e, leaves)
	metrics.ResultSize.Observe(float64(res.Len()))

	logpkg.FromContext(ctx).Debug("query evaluated",
		zap.Stringer("query", e),
		zap.Int("docs", res.Len()),
	)
	return res, nil
}

// Rank evaluates e and orders the result.
func (s *Service) Rank(ctx context.Context, e Expr, order Order) ([]search.Entry, error) {
	res, err := s.Evaluate(ctx, e)
	if err != nil {
		return nil, err
	}
	return res.Sort(order.Comparator()), nil
}

func (s *Service) lookup(ctx context.Context, term string) (search.Result, error) {
	start := time.Now()
	res, err := search.Search(ctx, term, s.index)
	metrics.TermLookupDuration.Observe(time.Since(start).Seconds())

	log := logpkg.FromContext(ctx)
	if err != nil {
		metrics.TermLookupsTotal.WithLabelValues("error").Inc()
		log.Warn("term lookup failed", zap.String("term", term), zap.Error(err))
		return search.Result{}, err
	}

	metrics.TermLookupsTotal.WithLabelValues("ok").Inc()
	log.Debug("term lookup",
		zap.String("term", term),
		zap.Int("docs", res.Len()),
		zap.Duration("latency", time.Since(start)),
	)
	return res, nil
}

// fold applies the operators of e bottom-up. e must be valid and every term
// resolved in leaves.
func fold(e Expr, leaves map[string]search.Result) search.Result {
	if e.IsTerm() {
		return leaves[e.TermValue()]
	}

	left := fold(e.Left(), leaves)
	right := fold(e.Right(), leaves)
	metrics.OperatorsTotal.WithLabelValues(string(e.Op())).Inc()

	switch e.Op() {
	case OpAnd:
		return left.And(right)
	case OpOr:
		return left.Or(right)
	default:
		return left.Minus(right)
	}
}
