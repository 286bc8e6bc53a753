// Package domain defines the core types of the governance store: DNA
// records, lifecycle events, and tiered items, together with the pure
// identity and checksum constructors.
package domain

import "time"

// LifecycleEvent is one immutable entry in an artifact's history.
// Events are only ever appended; existing entries are never edited or
// reordered, so the list forms a total order of the artifact's history.
type LifecycleEvent struct {
	Timestamp         time.Time       `json:"timestamp"`
	Action            LifecycleAction `json:"action"`
	Actor             string          `json:"actor"`
	Description       string          `json:"description"`
	PreviousVersionID string          `json:"previousVersionId,omitempty"`
	Snapshot          map[string]any  `json:"snapshot,omitempty"`
}

// DNARecord is the full provenance aggregate for one artifact. ArtifactID
// is assigned once and never changes, across any number of versions,
// renames, moves, or tier transitions.
type DNARecord struct {
	ArtifactID string           `json:"artifactId"`
	VersionID  string           `json:"versionId"`
	Origin     string           `json:"origin"`
	Timestamp  time.Time        `json:"timestamp"`
	Intent     string           `json:"intent"`
	Checksum   string           `json:"checksum"`
	Lifecycle  []LifecycleEvent `json:"lifecycle"`
}

// AppendEvent adds an event at the tail of the lifecycle log, preserving
// all prior entries and their order.
func (r *DNARecord) AppendEvent(e LifecycleEvent) {
	r.Lifecycle = append(r.Lifecycle, e)
}

// MergeHistory replaces r's lifecycle with the fully-preserved prior
// history followed by r's own fresh events. Used when an update produces a
// new record for an existing artifact: the new record's events are
// concatenated after the old history, never interleaved.
func (r *DNARecord) MergeHistory(prior []LifecycleEvent) {
	merged := make([]LifecycleEvent, 0, len(prior)+len(r.Lifecycle))
	merged = append(merged, prior...)
	merged = append(merged, r.Lifecycle...)
	r.Lifecycle = merged
}

// ValidationCount counts lifecycle events that vouch for the artifact:
// Validated, Promoted, and Created entries.
func (r *DNARecord) ValidationCount() int {
	n := 0
	for _, e := range r.Lifecycle {
		switch e.Action {
		case ActionValidated, ActionPromoted, ActionCreated:
			n++
		}
	}
	return n
}
