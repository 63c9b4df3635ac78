// Package fetch downloads pages for indexing, throttled so a crawl never
// hammers the remote wiki.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/wikisearch/internal/domain"
	"github.com/kailas-cloud/wikisearch/internal/metrics"
)

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 8 << 20

// Config holds fetcher settings.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	MinDelay  time.Duration // minimum spacing between requests
	Logger    *zap.Logger
}

// Client is a rate-limited HTTP page fetcher.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *zap.Logger
}

// NewClient creates a fetcher. A zero MinDelay disables throttling.
func NewClient(cfg *Config) *Client {
	limit := rate.Inf
	if cfg.MinDelay > 0 {
		limit = rate.Every(cfg.MinDelay)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Fetch downloads rawURL and returns its body. Only http and https URLs are
// accepted; non-2xx responses are errors wrapping domain.ErrPageFetch.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidURL, rawURL)
	}

	start := time.Now()
	defer func() { metrics.PageFetchDuration.Observe(time.Since(start).Seconds()) }()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.PageFetchesTotal.WithLabelValues("cancelled").Inc()
		return nil, fmt.Errorf("wait for fetch slot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.PageFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrPageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.PageFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrPageFetch, u, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		metrics.PageFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrPageFetch, err)
	}

	metrics.PageFetchesTotal.WithLabelValues("ok").Inc()
	c.logger.Debug("page fetched",
		zap.String("url", u.String()),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)),
	)
	return body, nil
}
