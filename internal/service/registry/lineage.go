package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/provenly/dnastore/internal/domain"
)

// Rename changes an artifact's display name. Identity, version, checksum,
// tier, and content are untouched; the change is recorded as a Renamed
// lifecycle event.
func (s *Service) Rename(ctx context.Context, artifactID, newName string) (*domain.TieredItem, error) {
	if newName == "" {
		return nil, domain.NewValidationError("new_name", "required")
	}
	return s.mutateMetadata(ctx, artifactID, domain.ActionRenamed,
		func(item *domain.TieredItem) string {
			old := item.Name
			item.Name = newName
			return fmt.Sprintf("renamed from %q to %q", old, newName)
		})
}

// Move changes an artifact's logical path. Like Rename, it is a pure
// metadata mutation recorded as a Moved lifecycle event.
func (s *Service) Move(ctx context.Context, artifactID, newPath string) (*domain.TieredItem, error) {
	if newPath == "" {
		return nil, domain.NewValidationError("new_path", "required")
	}
	return s.mutateMetadata(ctx, artifactID, domain.ActionMoved,
		func(item *domain.TieredItem) string {
			old := item.Path
			item.Path = newPath
			return fmt.Sprintf("moved from %q to %q", old, newPath)
		})
}

// Validate records an attestation from an external reviewer. Each Validated
// event raises the artifact's validation count, which feeds its trust score.
func (s *Service) Validate(ctx context.Context, input ValidateInput) (*domain.TieredItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lock := s.lockFor(input.ArtifactID)
	lock.Lock()
	defer lock.Unlock()

	item, ok := s.cache.Get(input.ArtifactID)
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", input.ArtifactID, domain.ErrNotFound)
	}

	desc := input.Note
	if desc == "" {
		desc = "validated"
	}
	item.DNA.AppendEvent(domain.LifecycleEvent{
		Timestamp:         time.Now().UTC(),
		Action:            domain.ActionValidated,
		Actor:             input.Actor,
		Description:       desc,
		PreviousVersionID: item.DNA.VersionID,
	})
	s.cache.Update(item)

	s.log.InfoContext(ctx, "artifact validated",
		slog.String("artifact_id", item.ID),
		slog.String("actor", input.Actor),
	)

	return &item, s.propagate(ctx, "validate", item)
}

// mutateMetadata applies a display-metadata change under the artifact's
// lock, appends the corresponding lifecycle event, and propagates.
func (s *Service) mutateMetadata(
	ctx context.Context,
	artifactID string,
	action domain.LifecycleAction,
	apply func(item *domain.TieredItem) string,
) (*domain.TieredItem, error) {
	lock := s.lockFor(artifactID)
	lock.Lock()
	defer lock.Unlock()

	item, ok := s.cache.Get(artifactID)
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", artifactID, domain.ErrNotFound)
	}

	desc := apply(&item)
	item.DNA.AppendEvent(domain.LifecycleEvent{
		Timestamp:         time.Now().UTC(),
		Action:            action,
		Actor:             item.DNA.Origin,
		Description:       desc,
		PreviousVersionID: item.DNA.VersionID,
	})
	s.cache.Update(item)

	s.log.InfoContext(ctx, "artifact metadata changed",
		slog.String("artifact_id", item.ID),
		slog.String("action", string(action)),
	)

	return &item, s.propagate(ctx, string(action), item)
}
