package wikisearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/wikisearch/internal/db"
	dbRedis "github.com/kailas-cloud/wikisearch/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/wikisearch/internal/db/sqlite"
	"github.com/kailas-cloud/wikisearch/internal/domain"
	"github.com/kailas-cloud/wikisearch/internal/domain/search"
	indexrepo "github.com/kailas-cloud/wikisearch/internal/repository/index"
	"github.com/kailas-cloud/wikisearch/internal/transport/fetch"
	healthuc "github.com/kailas-cloud/wikisearch/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
	"github.com/kailas-cloud/wikisearch/internal/version"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultFetchTimeout     = 15 * time.Second
)

// Internal interfaces, swapped for mocks in tests.
type queryUseCase interface {
	Term(ctx context.Context, term string) (search.Result, error)
	Rank(ctx context.Context, e queryuc.Expr, order queryuc.Order) ([]search.Entry, error)
}

type indexerUseCase interface {
	IndexURL(ctx context.Context, url string, force bool) (indexeruc.Outcome, error)
	IndexHTML(ctx context.Context, url string, page io.Reader) (indexeruc.Outcome, error)
}

type pageUseCase interface {
	DeletePage(ctx context.Context, url string) error
	TermCounts(ctx context.Context, url string) (map[string]int, error)
}

// Client is the wikisearch SDK entry point.
type Client struct {
	store      db.Store
	querySvc   queryUseCase
	indexerSvc indexerUseCase
	pages      pageUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a wikisearch Client and connects to the index store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: domain.KeyPrefix,
		userAgent: "wikisearch-sdk/" + version.Version,
		timeout:   defaultFetchTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("wikisearch: store required (use WithRedis, WithValkey or WithSQLite)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("wikisearch: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, fmt.Errorf("wikisearch: %s address required", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("wikisearch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case "sqlite":
		s, err := dbSQLite.NewStore(cfg.path)
		if err != nil {
			return nil, fmt.Errorf("wikisearch: create sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("wikisearch: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := indexrepo.New(store, cfg.keyPrefix)
	fetcher := fetch.NewClient(&fetch.Config{
		UserAgent: cfg.userAgent,
		Timeout:   cfg.timeout,
		MinDelay:  cfg.fetchWait,
	})

	return &Client{
		store:      store,
		querySvc:   queryuc.New(repo),
		indexerSvc: indexeruc.New(repo, fetcher),
		pages:      repo,
		healthSvc:  healthuc.New(map[string]healthuc.Pinger{"index": store}),
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
