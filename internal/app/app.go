// Package app wires configuration, logging, storage, and the registry
// service into a running process.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/provenly/dnastore/internal/adapter/index"
	"github.com/provenly/dnastore/internal/adapter/postgres"
	"github.com/provenly/dnastore/internal/adapter/postgres/artifact"
	"github.com/provenly/dnastore/internal/config"
	"github.com/provenly/dnastore/internal/governance"
	"github.com/provenly/dnastore/internal/service/registry"
)

// Run is the application entry point. It loads configuration, connects to
// the canonical store, builds the registry service, and runs the sync and
// eviction loops until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting dnastore",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Duration("sync_interval", cfg.Sync.Interval),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := artifact.New(pool)
	txm := postgres.NewTxManager(pool)
	gate := governance.NewGate(logger, cfg.Governance.TrustThreshold)

	var searcher interface {
		Search(ctx context.Context, query string, topK int) ([]string, error)
	} = index.NewStub()
	if cfg.Index.BaseURL != "" {
		searcher = index.NewClient(cfg.Index.BaseURL, cfg.Index.Timeout, logger)
	} else {
		logger.Info("no semantic index configured, search disabled")
	}

	svc := registry.NewService(logger, repo, searcher, gate, txm, registry.Options{
		RemoteTimeout: cfg.Sync.RemoteTimeout,
		EphemeralTTL:  cfg.Sync.EphemeralTTL,
		SyncInterval:  cfg.Sync.Interval,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.RunSync(gctx)
	})
	g.Go(func() error {
		return runEviction(gctx, logger, repo, cfg.Sync.EvictionInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("dnastore stopped")
	return nil
}

// runEviction periodically removes ephemeral artifacts whose TTL has passed
// from the canonical store. The next cache sync makes the eviction visible
// locally.
func runEviction(ctx context.Context, logger *slog.Logger, repo *artifact.Repo, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			evicted, err := repo.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				logger.Warn("ttl eviction failed", slog.String("error", err.Error()))
				continue
			}
			if evicted > 0 {
				logger.Info("ttl eviction completed", slog.Int64("evicted", evicted))
			}
		}
	}
}
