// Package trust computes the provenance trust score that gates promotion.
// Scoring is a pure, reproducible function of the DNA record plus the
// contradiction signal supplied by the governance gate.
package trust

import (
	"strings"

	"github.com/provenly/dnastore/internal/domain"
)

const (
	base = 0.5

	humanBonus     = 0.3
	agentBonus     = 0.2
	authorityBonus = 0.3

	noContradictionBonus = 0.2

	validationStep = 0.1
	validationCap  = 0.3

	trustedIntentBonus = 0.2
)

// trustedIntents is the fixed allow-list of pre-trusted intents.
var trustedIntents = map[string]struct{}{
	"health-check":   {},
	"audit":          {},
	"initialization": {},
	"upload":         {},
}

// Score returns a trust score in [0.0, 1.0] for the item. It is a monotonic
// combination of independent provenance signals: origin category (mutually
// exclusive), absence of a contradiction, prior validation history, and a
// pre-trusted intent. The result is clamped to 1.0.
func Score(item domain.TieredItem, contradiction bool) float64 {
	score := base

	switch domain.ClassifyOrigin(item.DNA.Origin) {
	case domain.OriginHuman:
		score += humanBonus
	case domain.OriginAgent:
		score += agentBonus
	case domain.OriginAuthority:
		score += authorityBonus
	}

	if !contradiction {
		score += noContradictionBonus
	}

	validation := validationStep * float64(item.DNA.ValidationCount())
	if validation > validationCap {
		validation = validationCap
	}
	score += validation

	if _, ok := trustedIntents[strings.ToLower(item.DNA.Intent)]; ok {
		score += trustedIntentBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}
