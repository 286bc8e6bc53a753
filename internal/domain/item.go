package domain

import "time"

// TieredItem is one artifact as held by a storage tier. ID always equals
// the DNA record's ArtifactID. An artifact is a member of exactly one tier
// at any instant; promotion (ephemeral → durable) is the only transition,
// and there is no reverse transition.
type TieredItem struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
	Path string    `json:"path,omitempty"`
	DNA  DNARecord `json:"dna"`
	Tier Tier      `json:"tier"`

	// TTL is the absolute expiry instant. Only ephemeral items carry one;
	// durable items are retained indefinitely.
	TTL *time.Time `json:"ttl,omitempty"`
}

// Expired reports whether an ephemeral item's TTL has passed. Durable
// items never expire.
func (i TieredItem) Expired(now time.Time) bool {
	return i.Tier == TierEphemeral && i.TTL != nil && now.After(*i.TTL)
}
