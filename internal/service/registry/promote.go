package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/provenly/dnastore/internal/domain"
)

// PromotionResult reports the outcome of a promotion attempt. A denied
// promotion is a recorded decision, not an error: Approved is false and
// Reason carries the governance verdict.
type PromotionResult struct {
	Approved bool
	Score    float64
	Reason   string
	Item     *domain.TieredItem
}

// Promote runs the governance gate over an ephemeral artifact and, on
// approval, moves it into the durable tier. Attempts for one artifact are
// serialized, so concurrent calls yield exactly one Promoted event and one
// tier transition; the losers observe the already-durable state and fail
// with ErrAlreadyExists.
func (s *Service) Promote(ctx context.Context, artifactID string) (*PromotionResult, error) {
	lock := s.lockFor(artifactID)
	lock.Lock()
	defer lock.Unlock()

	item, ok := s.cache.Get(artifactID)
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", artifactID, domain.ErrNotFound)
	}
	if item.Tier == domain.TierDurable {
		return nil, fmt.Errorf("artifact %s already durable: %w", artifactID, domain.ErrAlreadyExists)
	}

	decision := s.gate.Evaluate(item, s.cache.Durable())
	now := time.Now().UTC()

	if !decision.Approved {
		item.DNA.AppendEvent(domain.LifecycleEvent{
			Timestamp:         now,
			Action:            domain.ActionPromotionRejected,
			Actor:             domain.AuthorityOrigin,
			Description:       decision.Reason,
			PreviousVersionID: item.DNA.VersionID,
			Snapshot:          map[string]any{"trustScore": decision.Score},
		})
		s.cache.Update(item)

		s.log.InfoContext(ctx, "promotion rejected",
			slog.String("artifact_id", artifactID),
			slog.Float64("trust_score", decision.Score),
			slog.String("reason", decision.Reason),
		)

		result := &PromotionResult{
			Approved: false,
			Score:    decision.Score,
			Reason:   decision.Reason,
			Item:     &item,
		}
		return result, s.propagate(ctx, "promote", item)
	}

	item.DNA.AppendEvent(domain.LifecycleEvent{
		Timestamp:         now,
		Action:            domain.ActionPromoted,
		Actor:             domain.AuthorityOrigin,
		Description:       fmt.Sprintf("approved with trust score %.2f", decision.Score),
		PreviousVersionID: item.DNA.VersionID,
		Snapshot:          map[string]any{"trustScore": decision.Score},
	})
	s.cache.Update(item)

	promoted, ok := s.cache.MoveToDurable(artifactID)
	if !ok {
		// The item left the ephemeral tier between Get and the move. The
		// per-artifact lock makes this a sync-eviction race; surface it.
		return nil, fmt.Errorf("artifact %s: %w", artifactID, domain.ErrNotFound)
	}

	s.log.InfoContext(ctx, "artifact promoted",
		slog.String("artifact_id", artifactID),
		slog.Float64("trust_score", decision.Score),
	)

	result := &PromotionResult{
		Approved: true,
		Score:    decision.Score,
		Item:     &promoted,
	}
	return result, s.propagate(ctx, "promote", promoted)
}
