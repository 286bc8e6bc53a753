// Package governance implements the gate that is the sole decision
// authority for promoting an artifact into the durable tier. It runs the
// trust threshold check, contradiction detection, and a policy/safety scan
// in sequence, short-circuiting on the first hard failure.
package governance

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/provenly/dnastore/internal/domain"
	"github.com/provenly/dnastore/internal/trust"
)

// DefaultThreshold is the minimum trust score required for promotion.
const DefaultThreshold = 0.7

// forbiddenPatterns are destructive filesystem and database commands that
// always block promotion. Matching is case-insensitive over the serialized
// item.
var forbiddenPatterns = []string{
	"rm -rf",
	"rm -r /",
	"drop table",
	"drop database",
	"truncate table",
	"mkfs.",
	"dd if=/dev",
	"format c:",
	"del /s",
}

// sensitiveKeywords flag material that looks like credentials. Presence is
// advisory only and never blocks promotion; the flag is suppressed when the
// governance authority itself produced the item.
var sensitiveKeywords = []string{
	"password",
	"api key",
	"apikey",
	"secret",
	"private key",
	"token",
}

// Decision is the gate's verdict on a promotion candidate.
type Decision struct {
	Approved bool
	Score    float64
	Reason   string

	// Contradiction reports that a durable item shares the candidate's
	// intent with a different checksum. Advisory: it feeds the trust score
	// but does not itself cause rejection.
	Contradiction bool

	// Sensitive reports credential-looking content. Advisory only.
	Sensitive bool
}

// Gate evaluates promotion candidates against governance policy.
type Gate struct {
	log       *slog.Logger
	threshold float64
}

// NewGate creates a gate with the given trust threshold.
func NewGate(logger *slog.Logger, threshold float64) *Gate {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gate{
		log:       logger.With("component", "governance"),
		threshold: threshold,
	}
}

// Evaluate decides whether item may be promoted, given the current durable
// collection. Checks run in order: trust threshold, contradiction
// detection, policy scan. The first hard failure wins.
func (g *Gate) Evaluate(item domain.TieredItem, durable []domain.TieredItem) Decision {
	contradiction := g.detectContradiction(item, durable)

	d := Decision{
		Score:         trust.Score(item, contradiction),
		Contradiction: contradiction,
	}

	if d.Score < g.threshold {
		d.Reason = "trust score below promotion threshold"
		return d
	}

	if contradiction {
		// Advisory only: recorded on the decision, never a rejection.
		g.log.Warn("contradiction detected",
			slog.String("artifact_id", item.ID),
			slog.String("intent", item.DNA.Intent),
		)
	}

	if pattern, ok := g.scanForbidden(item); ok {
		d.Reason = "constitutional policy violation: forbidden pattern " + strings.TrimSpace(pattern)
		return d
	}

	d.Sensitive = g.scanSensitive(item)
	if d.Sensitive {
		g.log.Warn("sensitive content flagged",
			slog.String("artifact_id", item.ID),
			slog.String("origin", item.DNA.Origin),
		)
	}

	d.Approved = true
	return d
}

// detectContradiction compares the candidate's intent against durable items
// sharing that intent; differing checksums under the same non-generic
// intent flag a potential contradiction.
func (g *Gate) detectContradiction(item domain.TieredItem, durable []domain.TieredItem) bool {
	if item.DNA.Intent == domain.DefaultIntent {
		return false
	}
	for _, d := range durable {
		if d.DNA.Intent == item.DNA.Intent && d.DNA.Checksum != item.DNA.Checksum {
			return true
		}
	}
	return false
}

// scanForbidden matches the serialized item against forbiddenPatterns.
func (g *Gate) scanForbidden(item domain.TieredItem) (string, bool) {
	serialized := serializeLower(item)
	for _, p := range forbiddenPatterns {
		if strings.Contains(serialized, p) {
			return p, true
		}
	}
	return "", false
}

// scanSensitive flags credential-looking keywords, unless the governance
// authority itself is the origin.
func (g *Gate) scanSensitive(item domain.TieredItem) bool {
	if domain.ClassifyOrigin(item.DNA.Origin) == domain.OriginAuthority {
		return false
	}
	serialized := serializeLower(item)
	for _, k := range sensitiveKeywords {
		if strings.Contains(serialized, k) {
			return true
		}
	}
	return false
}

func serializeLower(item domain.TieredItem) string {
	b, err := json.Marshal(item)
	if err != nil {
		// TieredItem contains only marshalable fields; fall back to the
		// visible metadata if that ever changes.
		return strings.ToLower(item.Name + " " + item.Path)
	}
	return strings.ToLower(string(b))
}
