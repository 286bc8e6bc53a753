package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/provenly/dnastore/internal/domain"
)

// RunSync reconciles the cache against the canonical store once, then keeps
// doing so on the configured interval until ctx is cancelled. Intended to
// run in its own goroutine for the process lifetime.
func (s *Service) RunSync(ctx context.Context) error {
	if err := s.SyncOnce(ctx); err != nil {
		s.log.WarnContext(ctx, "initial sync failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(s.opts.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "sync loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				s.log.WarnContext(ctx, "sync failed", slog.String("error", err.Error()))
			}
		}
	}
}

// SyncOnce fetches both tiers from the canonical store and replaces the
// cache wholesale. If a sync is already in flight the tick is skipped. On
// fetch failure the previous cache snapshot is kept untouched.
func (s *Service) SyncOnce(ctx context.Context) error {
	if !s.syncMu.TryLock() {
		s.log.DebugContext(ctx, "sync already running, skipping")
		return nil
	}
	defer s.syncMu.Unlock()

	rctx, cancel := context.WithTimeout(ctx, s.opts.RemoteTimeout)
	defer cancel()

	ephemeral, err := s.store.ListByTier(rctx, domain.TierEphemeral)
	if err != nil {
		return fmt.Errorf("fetch ephemeral tier: %w: %w", err, domain.ErrSyncFailed)
	}
	durable, err := s.store.ListByTier(rctx, domain.TierDurable)
	if err != nil {
		return fmt.Errorf("fetch durable tier: %w: %w", err, domain.ErrSyncFailed)
	}

	s.cache.Replace(ephemeral, durable)

	s.log.DebugContext(ctx, "cache synced",
		slog.Int("ephemeral", len(ephemeral)),
		slog.Int("durable", len(durable)),
	)
	return nil
}
