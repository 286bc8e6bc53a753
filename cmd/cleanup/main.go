// Command cleanup evicts ephemeral artifacts whose TTL has passed from the
// canonical store. The server runs the same eviction in-process; this binary
// exists for external cron-driven setups.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/provenly/dnastore/internal/adapter/postgres"
	"github.com/provenly/dnastore/internal/adapter/postgres/artifact"
	"github.com/provenly/dnastore/internal/app"
	"github.com/provenly/dnastore/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := artifact.New(pool)

	now := time.Now().UTC()
	evicted, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("ttl eviction failed",
			slog.String("error", err.Error()),
			slog.Time("now", now),
		)
		os.Exit(1)
	}

	logger.Info("ttl eviction completed",
		slog.Int64("evicted", evicted),
		slog.Time("now", now),
	)
}
