package registry

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/provenly/dnastore/internal/cache"
	"github.com/provenly/dnastore/internal/domain"
	"github.com/provenly/dnastore/internal/governance"
)

// newTestService creates a Service with the given mocks, a real governance
// gate, a pass-through tx manager, and a discard logger.
func newTestService(t *testing.T, store *canonicalStoreMock, index *searchIndexMock) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Service{
		log:   logger,
		store: store,
		index: index,
		gate:  governance.NewGate(logger, governance.DefaultThreshold),
		tx: &txManagerMock{
			RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
				return fn(ctx)
			},
		},
		cache: cache.NewTiered(),
		opts: Options{
			RemoteTimeout: time.Second,
			EphemeralTTL:  time.Hour,
			SyncInterval:  10 * time.Millisecond,
		},
		locks: make(map[string]*sync.Mutex),
	}
}

// okStore is a canonical store that accepts every write.
func okStore() *canonicalStoreMock {
	return &canonicalStoreMock{
		UpsertFunc: func(ctx context.Context, item domain.TieredItem) error {
			return nil
		},
		ListByTierFunc: func(ctx context.Context, tier domain.Tier) ([]domain.TieredItem, error) {
			return nil, nil
		},
	}
}

// seedItem builds a tiered item directly, bypassing Track, for tests that
// need precise control over DNA fields.
func seedItem(id, origin, intent string, content []byte, tier domain.Tier) domain.TieredItem {
	now := time.Now().UTC()
	rec := domain.NewRecord(origin, intent, content, id, now)
	rec.AppendEvent(domain.LifecycleEvent{
		Timestamp:   now,
		Action:      domain.ActionCreated,
		Actor:       origin,
		Description: "artifact created",
	})
	item := domain.TieredItem{
		ID:   id,
		Name: id,
		Type: "text",
		Path: "/" + id,
		Tier: tier,
		DNA:  rec,
	}
	if tier == domain.TierEphemeral {
		ttl := now.Add(time.Hour)
		item.TTL = &ttl
	}
	return item
}

func lastEvent(t *testing.T, item *domain.TieredItem) domain.LifecycleEvent {
	t.Helper()
	if len(item.DNA.Lifecycle) == 0 {
		t.Fatal("lifecycle is empty")
	}
	return item.DNA.Lifecycle[len(item.DNA.Lifecycle)-1]
}

func countAction(item *domain.TieredItem, action domain.LifecycleAction) int {
	n := 0
	for _, e := range item.DNA.Lifecycle {
		if e.Action == action {
			n++
		}
	}
	return n
}
