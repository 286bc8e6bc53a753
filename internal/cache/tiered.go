// Package cache holds the local two-tier mirror of the canonical store:
// ephemeral items keyed by artifact id, plus an ordered collection of
// durable items. The mirror is replaced wholesale by reconciliation and
// mutated in place by tracked operations, so it may transiently diverge
// from canonical state until the next successful sync.
package cache

import (
	"sync"
	"time"

	"github.com/provenly/dnastore/internal/domain"
)

// Tiered is the in-memory two-tier mirror. Safe for concurrent use.
type Tiered struct {
	mu        sync.RWMutex
	ephemeral map[string]domain.TieredItem
	durable   []domain.TieredItem
}

// NewTiered creates an empty mirror.
func NewTiered() *Tiered {
	return &Tiered{
		ephemeral: make(map[string]domain.TieredItem),
	}
}

// Replace swaps in a full canonical snapshot of both tiers. Replacing with
// an identical snapshot is observably a no-op. Callers must pass ownership
// of both arguments.
func (t *Tiered) Replace(ephemeral []domain.TieredItem, durable []domain.TieredItem) {
	eph := make(map[string]domain.TieredItem, len(ephemeral))
	for _, item := range ephemeral {
		eph[item.ID] = item
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ephemeral = eph
	t.durable = durable
}

// Get looks an artifact up by id, checking the ephemeral tier first and
// then the durable tier. Ephemeral items past their TTL are treated as
// absent even before the backing store evicts them.
func (t *Tiered) Get(id string) (domain.TieredItem, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if item, ok := t.ephemeral[id]; ok {
		if item.Expired(time.Now()) {
			return domain.TieredItem{}, false
		}
		return item, true
	}
	for _, item := range t.durable {
		if item.ID == id {
			return item, true
		}
	}
	return domain.TieredItem{}, false
}

// UpsertEphemeral inserts or replaces an item in the ephemeral tier.
func (t *Tiered) UpsertEphemeral(item domain.TieredItem) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ephemeral[item.ID] = item
}

// MoveToDurable removes the item from the ephemeral tier and appends it to
// the durable collection with its tier flipped and TTL cleared. Returns the
// moved item, or false if the id is not in the ephemeral tier.
func (t *Tiered) MoveToDurable(id string) (domain.TieredItem, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.ephemeral[id]
	if !ok {
		return domain.TieredItem{}, false
	}
	delete(t.ephemeral, id)

	item.Tier = domain.TierDurable
	item.TTL = nil
	t.durable = append(t.durable, item)
	return item, true
}

// Update replaces the stored item in whichever tier currently holds it.
// Tier membership is not changed. Returns false if the id is unknown.
func (t *Tiered) Update(item domain.TieredItem) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.ephemeral[item.ID]; ok {
		item.Tier = domain.TierEphemeral
		t.ephemeral[item.ID] = item
		return true
	}
	for i, d := range t.durable {
		if d.ID == item.ID {
			item.Tier = domain.TierDurable
			item.TTL = nil
			t.durable[i] = item
			return true
		}
	}
	return false
}

// Ephemeral returns a copy of the ephemeral tier's items.
func (t *Tiered) Ephemeral() []domain.TieredItem {
	t.mu.RLock()
	defer t.mu.RUnlock()

	items := make([]domain.TieredItem, 0, len(t.ephemeral))
	for _, item := range t.ephemeral {
		items = append(items, item)
	}
	return items
}

// Durable returns a copy of the durable tier's ordered items.
func (t *Tiered) Durable() []domain.TieredItem {
	t.mu.RLock()
	defer t.mu.RUnlock()

	items := make([]domain.TieredItem, len(t.durable))
	copy(items, t.durable)
	return items
}

// All returns every cached item, ephemeral first.
func (t *Tiered) All() []domain.TieredItem {
	t.mu.RLock()
	defer t.mu.RUnlock()

	items := make([]domain.TieredItem, 0, len(t.ephemeral)+len(t.durable))
	for _, item := range t.ephemeral {
		items = append(items, item)
	}
	items = append(items, t.durable...)
	return items
}
