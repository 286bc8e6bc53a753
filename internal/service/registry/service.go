// Package registry implements the governance store's external interface:
// tracking artifacts into the ephemeral tier, gated promotion into the
// durable tier, lineage operations, search, and the periodic reconciliation
// of the local tiered cache against the canonical store.
package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/provenly/dnastore/internal/cache"
	"github.com/provenly/dnastore/internal/domain"
	"github.com/provenly/dnastore/internal/governance"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type canonicalStore interface {
	ListByTier(ctx context.Context, tier domain.Tier) ([]domain.TieredItem, error)
	Upsert(ctx context.Context, item domain.TieredItem) error
}

type searchIndex interface {
	Search(ctx context.Context, query string, topK int) ([]string, error)
}

type promotionGate interface {
	Evaluate(item domain.TieredItem, durable []domain.TieredItem) governance.Decision
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Options carries the tunables the service reads from configuration.
type Options struct {
	// RemoteTimeout bounds every call to the canonical store so a slow
	// remote degrades to local-only operation instead of hanging.
	RemoteTimeout time.Duration

	// EphemeralTTL is the lifetime granted to newly tracked items.
	EphemeralTTL time.Duration

	// SyncInterval is the period of cache reconciliation.
	SyncInterval time.Duration
}

// Service owns the tiered cache and orchestrates all artifact mutations.
// Mutations for one artifact are serialized by a per-id mutex; different
// artifacts proceed concurrently.
type Service struct {
	log   *slog.Logger
	store canonicalStore
	index searchIndex
	gate  promotionGate
	tx    txManager
	cache *cache.Tiered
	opts  Options

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	syncMu sync.Mutex // serializes sync runs; overlapping ticks are skipped
}

// NewService creates the registry service.
func NewService(
	logger *slog.Logger,
	store canonicalStore,
	index searchIndex,
	gate promotionGate,
	tx txManager,
	opts Options,
) *Service {
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = 3 * time.Second
	}
	if opts.EphemeralTTL <= 0 {
		opts.EphemeralTTL = 24 * time.Hour
	}
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = 5 * time.Second
	}
	return &Service{
		log:   logger.With("service", "registry"),
		store: store,
		index: index,
		gate:  gate,
		tx:    tx,
		cache: cache.NewTiered(),
		opts:  opts,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing mutations of one artifact.
func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// propagate pushes the item's state to the canonical store, best-effort.
// The local mutation has already been applied; a remote failure is logged
// and returned as a RemoteWarning so callers can report degraded mode.
func (s *Service) propagate(ctx context.Context, op string, item domain.TieredItem) error {
	rctx, cancel := context.WithTimeout(ctx, s.opts.RemoteTimeout)
	defer cancel()

	err := s.tx.RunInTx(rctx, func(txCtx context.Context) error {
		return s.store.Upsert(txCtx, item)
	})
	if err != nil {
		s.log.WarnContext(ctx, "canonical store propagation failed",
			slog.String("op", op),
			slog.String("artifact_id", item.ID),
			slog.String("error", err.Error()),
		)
		return domain.NewRemoteWarning(op, err)
	}
	return nil
}
