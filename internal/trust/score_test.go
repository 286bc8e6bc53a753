package trust

import (
	"testing"
	"time"

	"github.com/provenly/dnastore/internal/domain"
)

func item(origin, intent string, actions ...domain.LifecycleAction) domain.TieredItem {
	rec := domain.NewRecord(origin, intent, []byte("content"), "", time.Now())
	for _, a := range actions {
		rec.AppendEvent(domain.LifecycleEvent{Timestamp: time.Now(), Action: a, Actor: origin})
	}
	return domain.TieredItem{ID: rec.ArtifactID, Name: "n", Tier: domain.TierEphemeral, DNA: rec}
}

func TestScore_HumanOriginDefaultIntent(t *testing.T) {
	t.Parallel()

	// base 0.5 + human 0.3 + no contradiction 0.2 + Created event 0.1 = 1.0 (clamped)
	got := Score(item("User", domain.DefaultIntent, domain.ActionCreated), false)
	if got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}

	// Without any lifecycle events: 0.5 + 0.3 + 0.2 = 1.0 exactly.
	got = Score(item("User", domain.DefaultIntent), false)
	if got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
}

func TestScore_AgentOrigin(t *testing.T) {
	t.Parallel()

	// base 0.5 + agent 0.2 + no contradiction 0.2 = 0.9
	got := Score(item("Agent:Worker", domain.DefaultIntent), false)
	if got < 0.89 || got > 0.91 {
		t.Errorf("expected ~0.9, got %v", got)
	}
}

func TestScore_ContradictionDropsBonus(t *testing.T) {
	t.Parallel()

	clean := Score(item("Agent:Worker", domain.DefaultIntent), false)
	flagged := Score(item("Agent:Worker", domain.DefaultIntent), true)

	diff := clean - flagged
	if diff < 0.19 || diff > 0.21 {
		t.Errorf("contradiction should cost exactly the 0.2 bonus, dropped %v", diff)
	}
}

func TestScore_ValidationHistoryCapped(t *testing.T) {
	t.Parallel()

	// Ten validations would be +1.0 uncapped; must cap at +0.3.
	// Unknown origin: base 0.5 + no contradiction 0.2 + cap 0.3 = 1.0
	many := item("webhook", domain.DefaultIntent,
		domain.ActionValidated, domain.ActionValidated, domain.ActionValidated,
		domain.ActionValidated, domain.ActionValidated, domain.ActionValidated,
		domain.ActionValidated, domain.ActionValidated, domain.ActionValidated,
		domain.ActionValidated)
	few := item("webhook", domain.DefaultIntent,
		domain.ActionValidated, domain.ActionValidated, domain.ActionValidated)

	if Score(many, false) != Score(few, false) {
		t.Error("validation bonus must be capped at 0.3")
	}
}

func TestScore_TrustedIntent(t *testing.T) {
	t.Parallel()

	// Unknown origin, contradiction: base 0.5 + intent 0.2 = 0.7
	got := Score(item("webhook", "upload"), true)
	if got < 0.69 || got > 0.71 {
		t.Errorf("expected ~0.7, got %v", got)
	}

	// Intent matching is case-insensitive.
	if Score(item("webhook", "Upload"), true) != got {
		t.Error("intent allow-list should be case-insensitive")
	}
}

func TestScore_BoundedForAllSignalCombinations(t *testing.T) {
	t.Parallel()

	origins := []string{"User", "Agent:Worker", "Constitution", "webhook", ""}
	intents := []string{domain.DefaultIntent, "upload", "audit", "deploy", ""}

	for _, origin := range origins {
		for _, intent := range intents {
			for _, contradiction := range []bool{true, false} {
				for validations := 0; validations <= 12; validations += 4 {
					it := item(origin, intent)
					for v := 0; v < validations; v++ {
						it.DNA.AppendEvent(domain.LifecycleEvent{Action: domain.ActionValidated})
					}
					got := Score(it, contradiction)
					if got < 0.0 || got > 1.0 {
						t.Fatalf("score out of bounds: %v (origin=%q intent=%q contradiction=%v validations=%d)",
							got, origin, intent, contradiction, validations)
					}
				}
			}
		}
	}
}
