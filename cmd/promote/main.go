// Command promote runs the governance gate over one ephemeral artifact and,
// on approval, moves it into the durable tier of the canonical store.
//
// Usage:
//
//	promote --id=<artifact-id>
//
// Requires DATABASE_DSN (or a config file) like the server.
//
// Exit codes: 0 = promoted, 1 = error, 2 = promotion rejected.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/provenly/dnastore/internal/adapter/index"
	"github.com/provenly/dnastore/internal/adapter/postgres"
	"github.com/provenly/dnastore/internal/adapter/postgres/artifact"
	"github.com/provenly/dnastore/internal/app"
	"github.com/provenly/dnastore/internal/config"
	"github.com/provenly/dnastore/internal/governance"
	"github.com/provenly/dnastore/internal/service/registry"
)

func main() {
	id := flag.String("id", "", "artifact id to promote")
	flag.Parse()

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --id=<artifact-id>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := artifact.New(pool)
	svc := registry.NewService(
		logger,
		repo,
		index.NewStub(),
		governance.NewGate(logger, cfg.Governance.TrustThreshold),
		postgres.NewTxManager(pool),
		registry.Options{
			RemoteTimeout: cfg.Sync.RemoteTimeout,
			EphemeralTTL:  cfg.Sync.EphemeralTTL,
			SyncInterval:  cfg.Sync.Interval,
		},
	)

	// Populate the cache from the canonical store before promoting.
	if err := svc.SyncOnce(ctx); err != nil {
		logger.Error("sync failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result, err := svc.Promote(ctx, *id)
	if err != nil {
		logger.Error("promote failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !result.Approved {
		fmt.Printf("Artifact %q rejected (trust score %.2f): %s\n", *id, result.Score, result.Reason)
		os.Exit(2)
	}
	fmt.Printf("Artifact %q promoted to durable (trust score %.2f).\n", *id, result.Score)
}
