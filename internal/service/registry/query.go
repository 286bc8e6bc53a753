package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/provenly/dnastore/internal/domain"
)

// Get returns the cached item with the given artifact id.
func (s *Service) Get(artifactID string) (*domain.TieredItem, error) {
	item, ok := s.cache.Get(artifactID)
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", artifactID, domain.ErrNotFound)
	}
	return &item, nil
}

// All returns every cached item across both tiers.
func (s *Service) All() []domain.TieredItem {
	return s.cache.All()
}

// EphemeralItems returns the cached ephemeral tier.
func (s *Service) EphemeralItems() []domain.TieredItem {
	return s.cache.Ephemeral()
}

// DurableItems returns the cached durable tier in promotion order.
func (s *Service) DurableItems() []domain.TieredItem {
	return s.cache.Durable()
}

// Search asks the semantic index for artifacts relevant to query and maps
// the ranked ids back to cached items. Ids the index knows about but the
// cache does not are dropped: the index may lag behind evictions.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]domain.TieredItem, error) {
	if topK <= 0 {
		topK = 10
	}

	ids, err := s.index.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	items := make([]domain.TieredItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.cache.Get(id); ok {
			items = append(items, item)
		}
	}

	s.log.DebugContext(ctx, "search completed",
		slog.String("query", query),
		slog.Int("hits", len(items)),
	)
	return items, nil
}
