// Package artifact implements the canonical-store repository for tiered
// items. The artifacts table holds current identity and display metadata;
// lifecycle_events is strictly append-only: rows are inserted with their
// position in the record's history and never updated.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/provenly/dnastore/internal/adapter/postgres"
	"github.com/provenly/dnastore/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var artifactColumns = []string{
	"id", "name", "type", "path", "tier", "origin", "intent",
	"version_id", "checksum", "recorded_at", "ttl",
}

var eventColumns = []string{
	"artifact_id", "seq", "ts", "action", "actor", "description",
	"previous_version_id", "snapshot",
}

// Repo provides tiered-item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new artifact repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Row types
// ---------------------------------------------------------------------------

type artifactRow struct {
	ID         string     `db:"id"`
	Name       string     `db:"name"`
	Type       string     `db:"type"`
	Path       string     `db:"path"`
	Tier       string     `db:"tier"`
	Origin     string     `db:"origin"`
	Intent     string     `db:"intent"`
	VersionID  string     `db:"version_id"`
	Checksum   string     `db:"checksum"`
	RecordedAt time.Time  `db:"recorded_at"`
	TTL        *time.Time `db:"ttl"`
}

type eventRow struct {
	ArtifactID        string    `db:"artifact_id"`
	Seq               int       `db:"seq"`
	TS                time.Time `db:"ts"`
	Action            string    `db:"action"`
	Actor             string    `db:"actor"`
	Description       string    `db:"description"`
	PreviousVersionID string    `db:"previous_version_id"`
	Snapshot          []byte    `db:"snapshot"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the tiered item with the given artifact id.
func (r *Repo) Get(ctx context.Context, id string) (*domain.TieredItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(artifactColumns...).
		From("artifacts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var row artifactRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("artifact %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "artifact", id)
	}

	events, err := r.eventsFor(ctx, q, []string{id})
	if err != nil {
		return nil, err
	}

	item, err := toDomainItem(row, events[id])
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByTier returns all items in the given tier. Durable items come back
// in promotion order.
func (r *Repo) ListByTier(ctx context.Context, tier domain.Tier) ([]domain.TieredItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(artifactColumns...).
		From("artifacts").
		Where(sq.Eq{"tier": string(tier)}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []artifactRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list artifacts by tier %s: %w", tier, err)
	}
	if len(rows) == 0 {
		return []domain.TieredItem{}, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	events, err := r.eventsFor(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.TieredItem, len(rows))
	for i, row := range rows {
		item, err := toDomainItem(row, events[row.ID])
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// eventsFor loads lifecycle events for the given artifact ids, grouped by
// artifact and ordered by their position in each record's history.
func (r *Repo) eventsFor(ctx context.Context, q postgres.Querier, ids []string) (map[string][]domain.LifecycleEvent, error) {
	sql, args, err := qb.Select(eventColumns...).
		From("lifecycle_events").
		Where(sq.Eq{"artifact_id": ids}).
		OrderBy("artifact_id ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list lifecycle events: %w", err)
	}

	grouped := make(map[string][]domain.LifecycleEvent, len(ids))
	for _, row := range rows {
		event, err := toDomainEvent(row)
		if err != nil {
			return nil, err
		}
		grouped[row.ArtifactID] = append(grouped[row.ArtifactID], event)
	}
	return grouped, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert writes the item's current state and appends any lifecycle events
// not yet persisted. Existing event rows are never touched: inserts use the
// record's position as a conflict key and skip rows already present. Run
// inside a transaction when atomicity across both tables is required.
func (r *Repo) Upsert(ctx context.Context, item domain.TieredItem) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ttl any
	if item.TTL != nil {
		ttl = *item.TTL
	}

	sql, args, err := qb.Insert("artifacts").
		Columns(artifactColumns...).
		Values(
			item.ID, item.Name, item.Type, item.Path, string(item.Tier),
			item.DNA.Origin, item.DNA.Intent, item.DNA.VersionID,
			item.DNA.Checksum, item.DNA.Timestamp, ttl,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			path = EXCLUDED.path,
			tier = EXCLUDED.tier,
			origin = EXCLUDED.origin,
			intent = EXCLUDED.intent,
			version_id = EXCLUDED.version_id,
			checksum = EXCLUDED.checksum,
			recorded_at = EXCLUDED.recorded_at,
			ttl = EXCLUDED.ttl,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "artifact", item.ID)
	}

	return r.appendEvents(ctx, q, item)
}

// appendEvents inserts the record's lifecycle events keyed by sequence
// position, skipping those already persisted.
func (r *Repo) appendEvents(ctx context.Context, q postgres.Querier, item domain.TieredItem) error {
	if len(item.DNA.Lifecycle) == 0 {
		return nil
	}

	insert := qb.Insert("lifecycle_events").Columns(eventColumns...)
	for seq, e := range item.DNA.Lifecycle {
		var snapshot []byte
		if e.Snapshot != nil {
			b, err := json.Marshal(e.Snapshot)
			if err != nil {
				return fmt.Errorf("artifact %s marshal snapshot: %w", item.ID, err)
			}
			snapshot = b
		}
		insert = insert.Values(
			item.ID, seq, e.Timestamp, string(e.Action), e.Actor,
			e.Description, e.PreviousVersionID, snapshot,
		)
	}

	sql, args, err := insert.
		Suffix("ON CONFLICT (artifact_id, seq) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build events insert: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "artifact", item.ID)
	}
	return nil
}

// Delete removes an item and (via cascade) its lifecycle events.
func (r *Repo) Delete(ctx context.Context, id string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Delete("artifacts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "artifact", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("artifact %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteExpired evicts ephemeral items whose TTL has passed. Returns the
// number of evicted items.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Delete("artifacts").
		Where(sq.Eq{"tier": string(domain.TierEphemeral)}).
		Where(sq.NotEq{"ttl": nil}).
		Where(sq.Lt{"ttl": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build expire query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired artifacts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers: rows -> domain
// ---------------------------------------------------------------------------

func toDomainItem(row artifactRow, events []domain.LifecycleEvent) (domain.TieredItem, error) {
	if events == nil {
		events = []domain.LifecycleEvent{}
	}
	item := domain.TieredItem{
		ID:   row.ID,
		Name: row.Name,
		Type: row.Type,
		Path: row.Path,
		Tier: domain.Tier(row.Tier),
		TTL:  row.TTL,
		DNA: domain.DNARecord{
			ArtifactID: row.ID,
			VersionID:  row.VersionID,
			Origin:     row.Origin,
			Timestamp:  row.RecordedAt,
			Intent:     row.Intent,
			Checksum:   row.Checksum,
			Lifecycle:  events,
		},
	}
	if !item.Tier.IsValid() {
		return domain.TieredItem{}, fmt.Errorf("artifact %s: unknown tier %q: %w", row.ID, row.Tier, domain.ErrValidation)
	}
	return item, nil
}

func toDomainEvent(row eventRow) (domain.LifecycleEvent, error) {
	event := domain.LifecycleEvent{
		Timestamp:         row.TS,
		Action:            domain.LifecycleAction(row.Action),
		Actor:             row.Actor,
		Description:       row.Description,
		PreviousVersionID: row.PreviousVersionID,
	}
	if len(row.Snapshot) > 0 {
		snapshot := make(map[string]any)
		if err := json.Unmarshal(row.Snapshot, &snapshot); err != nil {
			return domain.LifecycleEvent{}, fmt.Errorf("artifact %s unmarshal snapshot: %w", row.ArtifactID, err)
		}
		event.Snapshot = snapshot
	}
	return event, nil
}
