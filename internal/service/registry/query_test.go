package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/provenly/dnastore/internal/domain"
)

func TestSearch_MapsRankedIdsToCachedItems(t *testing.T) {
	t.Parallel()

	index := &searchIndexMock{
		SearchFunc: func(ctx context.Context, query string, topK int) ([]string, error) {
			return []string{"b", "evicted", "a"}, nil
		},
	}
	svc := newTestService(t, okStore(), index)
	svc.cache.Replace(
		[]domain.TieredItem{seedItem("a", "User", "", []byte("a"), domain.TierEphemeral)},
		[]domain.TieredItem{seedItem("b", "User", "", []byte("b"), domain.TierDurable)},
	)

	items, err := svc.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	// Index order is preserved; ids unknown to the cache are dropped.
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("unexpected items: %v", items)
	}

	calls := index.SearchCalls()
	if len(calls) != 1 || calls[0].Query != "anything" || calls[0].TopK != 3 {
		t.Errorf("index calls: %+v", calls)
	}
}

func TestSearch_DefaultsTopK(t *testing.T) {
	t.Parallel()

	index := &searchIndexMock{
		SearchFunc: func(ctx context.Context, query string, topK int) ([]string, error) {
			return nil, nil
		},
	}
	svc := newTestService(t, okStore(), index)

	if _, err := svc.Search(context.Background(), "q", 0); err != nil {
		t.Fatalf("search: %v", err)
	}
	if calls := index.SearchCalls(); len(calls) != 1 || calls[0].TopK != 10 {
		t.Errorf("index calls: %+v", calls)
	}
}

func TestSearch_IndexErrorPropagates(t *testing.T) {
	t.Parallel()

	index := &searchIndexMock{
		SearchFunc: func(ctx context.Context, query string, topK int) ([]string, error) {
			return nil, errors.New("index unavailable")
		},
	}
	svc := newTestService(t, okStore(), index)

	if _, err := svc.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error from failing index")
	}
}

func TestGet_ChecksBothTiers(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, okStore(), &searchIndexMock{})
	svc.cache.Replace(
		[]domain.TieredItem{seedItem("e", "User", "", []byte("e"), domain.TierEphemeral)},
		[]domain.TieredItem{seedItem("d", "User", "", []byte("d"), domain.TierDurable)},
	)

	for _, id := range []string{"e", "d"} {
		item, err := svc.Get(id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if item.ID != id {
			t.Errorf("got %s, want %s", item.ID, id)
		}
	}

	if _, err := svc.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
