package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/provenly/dnastore/internal/domain"
)

// Track records an artifact mutation. A new artifact (no ExistingID) enters
// the ephemeral tier with a Created event and a TTL; an update to a known
// artifact appends an Updated event, re-derives version and checksum from
// the new content, and leaves tier membership untouched.
//
// The local cache is always mutated first. A failed push to the canonical
// store is returned as a RemoteWarning alongside the item: the caller got
// a successful local write and should treat the warning as degraded mode.
func (s *Service) Track(ctx context.Context, input TrackInput) (*domain.TieredItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if input.ExistingID == "" {
		return s.trackNew(ctx, input, now)
	}
	return s.trackUpdate(ctx, input, now)
}

func (s *Service) trackNew(ctx context.Context, input TrackInput, now time.Time) (*domain.TieredItem, error) {
	action := input.Action
	if action == "" {
		action = domain.ActionCreated
	}

	rec := domain.NewRecord(input.Origin, input.Intent, input.Content, "", now)
	rec.AppendEvent(domain.LifecycleEvent{
		Timestamp:   now,
		Action:      action,
		Actor:       input.Origin,
		Description: "artifact created",
		Snapshot:    contentSnapshot(input.Content),
	})

	ttl := now.Add(s.opts.EphemeralTTL)
	item := domain.TieredItem{
		ID:   rec.ArtifactID,
		Name: displayName(input.Name, input.Content, rec.ArtifactID),
		Type: defaultType(input.Type),
		Path: input.Path,
		Tier: domain.TierEphemeral,
		TTL:  &ttl,
		DNA:  rec,
	}

	lock := s.lockFor(item.ID)
	lock.Lock()
	s.cache.UpsertEphemeral(item)
	lock.Unlock()

	s.log.InfoContext(ctx, "artifact tracked",
		slog.String("artifact_id", item.ID),
		slog.String("origin", input.Origin),
		slog.String("intent", rec.Intent),
	)

	return &item, s.propagate(ctx, "track", item)
}

func (s *Service) trackUpdate(ctx context.Context, input TrackInput, now time.Time) (*domain.TieredItem, error) {
	lock := s.lockFor(input.ExistingID)
	lock.Lock()
	defer lock.Unlock()

	prev, ok := s.cache.Get(input.ExistingID)
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", input.ExistingID, domain.ErrNotFound)
	}

	intent := input.Intent
	if intent == "" {
		intent = prev.DNA.Intent
	}

	action := input.Action
	if action == "" {
		action = domain.ActionUpdated
	}

	rec := domain.NewRecord(prev.DNA.Origin, intent, input.Content, prev.ID, now)
	rec.AppendEvent(domain.LifecycleEvent{
		Timestamp:         now,
		Action:            action,
		Actor:             input.Origin,
		Description:       "content updated",
		PreviousVersionID: prev.DNA.VersionID,
		Snapshot:          contentSnapshot(input.Content),
	})
	rec.MergeHistory(prev.DNA.Lifecycle)

	item := prev
	item.DNA = rec
	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Type != "" {
		item.Type = input.Type
	}
	if input.Path != "" {
		item.Path = input.Path
	}

	if !s.cache.Update(item) {
		// A concurrent sync replaced the snapshot between Get and Update;
		// re-insert so the mutation is not lost.
		s.cache.UpsertEphemeral(item)
	}

	s.log.InfoContext(ctx, "artifact updated",
		slog.String("artifact_id", item.ID),
		slog.String("version_id", rec.VersionID),
		slog.String("actor", input.Origin),
	)

	return &item, s.propagate(ctx, "track", item)
}

// contentSnapshot captures the artifact body inside the lifecycle event so
// downstream governance scans see the content, not just metadata.
func contentSnapshot(content []byte) map[string]any {
	if len(content) == 0 {
		return nil
	}
	return map[string]any{"content": string(content)}
}

// displayName derives a human-readable name when none was supplied: the
// first line of content, capped, falling back to a shortened artifact id.
func displayName(name string, content []byte, id string) string {
	if name != "" {
		return name
	}
	line := strings.TrimSpace(string(content))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if len(line) > 64 {
		line = line[:64]
	}
	if line != "" {
		return line
	}
	if len(id) > 12 {
		return "artifact-" + id[:12]
	}
	return "artifact-" + id
}

func defaultType(t string) string {
	if t == "" {
		return "text"
	}
	return t
}
