package indexer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/wikisearch/internal/logger"
	"github.com/kailas-cloud/wikisearch/internal/metrics"
	"github.com/kailas-cloud/wikisearch/internal/textproc"
)

// Outcome describes what IndexURL did with a page.
type Outcome struct {
	URL     string `json:"url"`
	Terms   int    `json:"terms"`
	Skipped bool   `json:"skipped"`
}

// Service fetches pages, counts their terms and writes them to the index.
type Service struct {
	pages   PageStore
	fetcher Fetcher
}

// New creates an indexer service.
func New(pages PageStore, fetcher Fetcher) *Service {
	return &Service{pages: pages, fetcher: fetcher}
}

// IndexURL downloads and indexes url. Already indexed pages are skipped unless force is set.
func (s *Service) IndexURL(ctx context.Context, url string, force bool) (Outcome, error) {
	if !force {
		indexed, err := s.pages.IsIndexed(ctx, url)
		if err != nil {
			return Outcome{}, fmt.Errorf("check %s: %w", url, err)
		}
		if indexed {
			logpkg.FromContext(ctx).Debug("page already indexed", zap.String("url", url))
			return Outcome{URL: url, Skipped: true}, nil
		}
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetch %s: %w", url, err)
	}

	return s.IndexHTML(ctx, url, bytes.NewReader(body))
}

// IndexHTML indexes an already downloaded page.
func (s *Service) IndexHTML(ctx context.Context, url string, page io.Reader) (Outcome, error) {
	counts, err := textproc.CountTerms(page)
	if err != nil {
		return Outcome{}, fmt.Errorf("count terms of %s: %w", url, err)
	}

	if err := s.pages.IndexPage(ctx, url, counts); err != nil {
		return Outcome{}, fmt.Errorf("index %s: %w", url, err)
	}
	metrics.PagesIndexedTotal.Inc()

	logpkg.FromContext(ctx).Info("page indexed",
		zap.String("url", url),
		zap.Int("terms", len(counts)),
	)
	return Outcome{URL: url, Terms: len(counts)}, nil
}
