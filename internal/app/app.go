// Package app wires configuration into a ready CaseService. Both binaries
// build on it.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"casevault/internal/config"
	"casevault/internal/database"
	"casevault/internal/database/migration"
	"casevault/internal/repository/blob"
	"casevault/internal/service"
	"casevault/internal/storage"
)

// App holds the long-lived dependencies of a process.
type App struct {
	Config  *config.AppConfig
	Logger  zerolog.Logger
	Store   storage.BlobStore
	Cases   *blob.CaseStore
	Service service.CaseService

	closeStore func() error
}

// New opens the configured backend and builds the service on top of it.
// reg may be nil when metrics are not exported.
func New(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger, reg prometheus.Registerer) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg, logger, reg)
	if err != nil {
		return nil, err
	}

	cases, err := blob.NewCaseStore(store, blob.Options{
		Key:        cfg.Store.Key,
		Logger:     logger,
		Registerer: reg,
	})
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Cases:      cases,
		Service:    service.NewCaseService(cases, cfg.Location()),
		closeStore: closeStore,
	}, nil
}

// Close releases the backend connection.
func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

func noopClose() error { return nil }

// OpenStore connects to the backend named by cfg.Store.Backend. The returned
// func closes the underlying connection.
func OpenStore(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger, reg prometheus.Registerer) (storage.BlobStore, func() error, error) {
	var (
		store     storage.BlobStore
		closeFunc = noopClose
	)

	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = storage.NewMemory()

	case config.BackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, logger, reg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return nil, nil, errors.Join(fmt.Errorf("migrate postgres: %w", err), db.Close())
		}
		store, closeFunc = storage.NewPostgres(db), db.Close

	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		s, err := storage.NewSQLite(ctx, db)
		if err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}
		store, closeFunc = s, db.Close

	case config.BackendRedis:
		client, err := storage.OpenRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store, closeFunc = storage.NewRedis(client), client.Close

	case config.BackendMinIO:
		s, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, nil, fmt.Errorf("init minio: %w", err)
		}
		store = s

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	logger.Info().
		Str("component", "app").
		Str("event", "store_opened").
		Str("backend", cfg.Store.Backend).
		Str("key", cfg.Store.Key).
		Msg("")

	return store, closeFunc, nil
}
