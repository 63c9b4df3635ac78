package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikisearch/internal/config"
	"github.com/kailas-cloud/wikisearch/internal/db"
	dbRedis "github.com/kailas-cloud/wikisearch/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/wikisearch/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/wikisearch/internal/logger"
	"github.com/kailas-cloud/wikisearch/internal/metrics"
	indexrepo "github.com/kailas-cloud/wikisearch/internal/repository/index"
	"github.com/kailas-cloud/wikisearch/internal/transport/fetch"
	healthuc "github.com/kailas-cloud/wikisearch/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/wikisearch/internal/usecase/indexer"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

// Runtime is the wired application a command runs against.
type Runtime struct {
	Config  config.Config
	Logger  *zap.Logger
	Query   *queryuc.Service
	Indexer *indexeruc.Service
	Health  *healthuc.Service

	closers []func()
}

// Close releases the store and flushes the logger.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// Builder creates a Runtime for the given environment.
type Builder func(ctx context.Context, env string) (*Runtime, error)

// Build is the composition root: config, logger, store, repositories and
// use cases.
func Build(ctx context.Context, env string) (*Runtime, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	rt := &Runtime{Config: cfg, Logger: logger}
	rt.closers = append(rt.closers, func() { _ = logger.Sync() })

	store, err := openStore(cfg.Database)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	rt.closers = append(rt.closers, store.Close)

	if err := store.WaitForReady(ctx, cfg.Database.ReadinessTimeoutDuration()); err != nil {
		rt.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.Strings("addrs", cfg.Database.Addrs),
		zap.String("path", cfg.Database.Path),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterHTTPMetrics()

	repo := indexrepo.New(store, cfg.Index.KeyPrefix)
	fetcher := fetch.NewClient(&fetch.Config{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout(),
		MinDelay:  cfg.Fetch.MinDelay(),
		Logger:    logger,
	})

	rt.Query = queryuc.New(repo)
	rt.Indexer = indexeruc.New(repo, fetcher)
	rt.Health = healthuc.New(map[string]healthuc.Pinger{"index": store})
	return rt, nil
}

func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis, config.DriverValkey:
		// Valkey speaks the Redis protocol for every command the index uses.
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case config.DriverSQLite:
		return dbSQLite.NewStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
