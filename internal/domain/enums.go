package domain

import "strings"

// LifecycleAction represents the kind of transition recorded in an
// artifact's lifecycle log.
type LifecycleAction string

const (
	ActionCreated           LifecycleAction = "Created"
	ActionUpdated           LifecycleAction = "Updated"
	ActionRenamed           LifecycleAction = "Renamed"
	ActionMoved             LifecycleAction = "Moved"
	ActionPromoted          LifecycleAction = "Promoted"
	ActionPromotionRejected LifecycleAction = "PromotionRejected"
	ActionValidated         LifecycleAction = "Validated"
)

func (a LifecycleAction) String() string { return string(a) }

func (a LifecycleAction) IsValid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionRenamed, ActionMoved,
		ActionPromoted, ActionPromotionRejected, ActionValidated:
		return true
	}
	return false
}

// Tier identifies which storage tier currently owns an artifact.
type Tier string

const (
	TierEphemeral Tier = "ephemeral"
	TierDurable   Tier = "durable"
)

func (t Tier) String() string { return string(t) }

func (t Tier) IsValid() bool {
	switch t {
	case TierEphemeral, TierDurable:
		return true
	}
	return false
}

// OriginKind classifies an artifact's origin for trust scoring.
// The categories are mutually exclusive.
type OriginKind string

const (
	OriginHuman     OriginKind = "HUMAN"
	OriginAgent     OriginKind = "AGENT"
	OriginAuthority OriginKind = "AUTHORITY"
	OriginUnknown   OriginKind = "UNKNOWN"
)

// AuthorityOrigin is the origin string of the governance authority itself.
const AuthorityOrigin = "Constitution"

// ClassifyOrigin maps a free-form origin string to an OriginKind.
// Agents identify themselves with an "Agent:" prefix (e.g. "Agent:Worker").
func ClassifyOrigin(origin string) OriginKind {
	switch {
	case strings.EqualFold(origin, AuthorityOrigin):
		return OriginAuthority
	case strings.HasPrefix(strings.ToLower(origin), "agent"):
		return OriginAgent
	case strings.EqualFold(origin, "user") || strings.HasPrefix(strings.ToLower(origin), "human"):
		return OriginHuman
	}
	return OriginUnknown
}

// DefaultIntent is the generic intent assigned when a caller does not
// declare one. It is never flagged by contradiction detection.
const DefaultIntent = "General Interaction"
